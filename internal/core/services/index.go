package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driven"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// IndexBuilder reads the whole Notion database into an IssuePageIndex.
type IndexBuilder struct {
	pages driven.PageStore
}

// NewIndexBuilder creates an index builder over a page store.
func NewIndexBuilder(pages driven.PageStore) *IndexBuilder {
	return &IndexBuilder{pages: pages}
}

// Pages returns every page of the database as a lazy sequence, following
// query cursors until none is returned.
func (b *IndexBuilder) Pages(ctx context.Context) iter.Seq2[domain.PageRef, error] {
	return paginate(ctx, func(ctx context.Context, cursor string) ([]domain.PageRef, string, error) {
		batch, err := b.pages.QueryPages(ctx, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("query pages: %w", err)
		}
		return batch.Pages, batch.NextCursor, nil
	})
}

// Build returns the issue number to page id mapping of every page in the
// database. Any failed page fetch aborts the build and no index is
// returned. Pages without a Number value are skipped.
func (b *IndexBuilder) Build(ctx context.Context) (domain.IssuePageIndex, error) {
	index := make(domain.IssuePageIndex)

	for page, err := range b.Pages(ctx) {
		if err != nil {
			return nil, err
		}
		if !page.HasNumber {
			logger.Debug("Page %s has no issue number, ignoring", page.ID)
			continue
		}
		if existing, ok := index[page.Number]; ok {
			logger.Debug("Issue #%d has pages %s and %s", page.Number, existing, page.ID)
		}
		index[page.Number] = page.ID
	}

	return index, nil
}
