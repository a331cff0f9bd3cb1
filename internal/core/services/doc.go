// Package services implements the driving port interfaces.
// Services contain the core reconciliation logic and orchestrate
// calls to driven ports (adapters):
//
//   - PropertyMapper: issue to Notion property set, pure
//   - IndexBuilder: issue number to page id over the whole database
//   - IncrementalSync: one webhook event, one create or update
//   - Reconciler: additive full-repository reconciliation
//   - Dispatcher: routes a trigger to one of the two sync paths
//
// Services depend only on domain, ports and the logger; collaborators are
// passed to constructors, never held in package state.
package services
