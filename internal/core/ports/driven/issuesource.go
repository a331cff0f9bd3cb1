package driven

import (
	"context"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// IssuePageSize is the number of issues requested per listing page.
const IssuePageSize = 100

// IssueSource lists the issues of a repository, open and closed.
type IssueSource interface {
	// ListIssues returns one page of issues. Page 0 and 1 both denote the
	// first page. Pull requests are included and flagged.
	ListIssues(ctx context.Context, repo domain.RepoRef, page int) (*IssueBatch, error)
}

// IssueBatch is one page of the issue listing.
type IssueBatch struct {
	Issues []domain.IssueRecord

	// NextPage is the page to request next. Zero when no pages remain.
	NextPage int
}
