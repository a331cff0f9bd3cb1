// Package notion stores mirrored issues as pages of a Notion database.
//
// The package implements [driven.PageStore] on top of
// github.com/jomei/notionapi. A Client is bound to one database at
// construction and is safe for concurrent use.
//
// # Rate Limiting
//
// Notion allows an average of three requests per second per integration.
// The client throttles proactively with a token bucket and lets notionapi
// retry requests rejected with 429.
//
// # Properties
//
// Domain property values are converted to notionapi property types on
// write. On read only the Number and ID columns are decoded; the rest of a
// page is ignored.
package notion
