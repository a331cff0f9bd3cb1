// Package domain defines the core business entities for issuesync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IssueRecord: the subset of a GitHub issue that is mirrored
//   - PageProperties: the typed property set written to a Notion page
//   - PageRef: a Notion page as read back from the database
//   - IssuePageIndex: issue number to page id, rebuilt per reconciliation
//   - ReconcileReport: the outcome of a full reconciliation run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
