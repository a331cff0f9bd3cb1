package driven

import (
	"context"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// PageStore reads and writes pages of the target Notion database.
// Implementations are bound to a single database at construction.
type PageStore interface {
	// CreatePage creates a page in the database and returns its id.
	CreatePage(ctx context.Context, props domain.PageProperties) (string, error)

	// UpdatePage replaces the given properties of an existing page.
	UpdatePage(ctx context.Context, pageID string, props domain.PageProperties) error

	// FindPageByIssueID returns the first page whose ID column equals
	// issueID. Returns domain.ErrNotFound when no page matches.
	FindPageByIssueID(ctx context.Context, issueID int64) (*domain.PageRef, error)

	// QueryPages returns one page of database results starting at cursor.
	// An empty cursor starts from the beginning.
	QueryPages(ctx context.Context, cursor string) (*PageBatch, error)
}

// PageBatch is one page of a database query.
type PageBatch struct {
	Pages []domain.PageRef

	// NextCursor continues the query. Empty when no pages remain.
	NextCursor string
}
