package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/issuesync/internal/connectors/github"
	"github.com/custodia-labs/issuesync/internal/connectors/notion"
	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// failureHint suggests a fix for API errors caused by configuration or
// quota. It returns "" for anything else.
func failureHint(err error, s domain.Settings) string {
	switch {
	case github.IsRateLimited(err):
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) && !rateErr.ResetAt.IsZero() {
			return fmt.Sprintf("GitHub rate limit exhausted until %s; rerun after it resets",
				rateErr.ResetAt.Format(time.RFC3339))
		}
		return "GitHub rate limit exhausted; rerun later"
	case github.IsUnauthorized(err):
		return "GitHub rejected the token; check github.token or the github-token input"
	case github.IsForbidden(err):
		return fmt.Sprintf("the GitHub token cannot read issues of %s; grant it issues: read", s.Repository.FullName())
	case github.IsNotFound(err):
		return fmt.Sprintf("repository %s does not exist or the GitHub token cannot see it", s.Repository.FullName())
	case notion.IsRateLimited(err):
		return "Notion kept rate limiting requests; lower notion.rate or sync.concurrency"
	case notion.IsUnauthorized(err):
		return "Notion rejected the integration token; check notion.token or the notion-token input"
	case notion.IsNotFound(err):
		return fmt.Sprintf("Notion database %s was not found; share it with the integration", s.NotionDatabaseID)
	}
	return ""
}

// explainFailure logs the hint for err, if any, and returns err.
func explainFailure(err error) error {
	if hint := failureHint(err, settings); hint != "" {
		logger.Error("%s", hint)
	}
	return err
}
