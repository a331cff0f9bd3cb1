// Package connectors groups the clients for the external services issuesync
// talks to. Each subpackage implements one driven port:
//
//   - github: IssueSource over the GitHub REST API, plus event decoding
//   - notion: PageStore over a single Notion database
package connectors
