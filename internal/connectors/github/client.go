package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driven"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IssueSource = (*Client)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with rate limiting.
// It is safe for concurrent use.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClientWithToken creates a GitHub client with a static access token.
// Works for PATs, installation tokens and the Actions GITHUB_TOKEN.
func NewClientWithToken(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return NewClientWithHTTPClient(tc)
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		gh:          gh.NewClient(httpClient),
		rateLimiter: NewRateLimiter(),
	}
}

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise Server (https://ghe.example.com/api/v3/).
func (c *Client) WithBaseURL(rawURL string) (*Client, error) {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c.gh.BaseURL = u
	return c, nil
}

// ListIssues returns one page of the repository's issues in every state,
// oldest first. Pull requests are included and flagged.
func (c *Client) ListIssues(ctx context.Context, repo domain.RepoRef, page int) (*driven.IssueBatch, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.IssueListByRepoOptions{
		State:     "all",
		Sort:      "created",
		Direction: "asc",
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: driven.IssuePageSize,
		},
	}

	issues, resp, err := c.gh.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
	c.observeQuota(resp)
	if err != nil {
		err = c.wrapError(err, "list issues")
		if statusOf(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", ErrRepoNotFound, repo.FullName(), err)
		}
		return nil, err
	}

	batch := &driven.IssueBatch{
		Issues:   make([]domain.IssueRecord, 0, len(issues)),
		NextPage: resp.NextPage,
	}
	fallbackURL := repo.APIURL()
	for _, issue := range issues {
		batch.Issues = append(batch.Issues, toIssueRecord(issue, fallbackURL))
	}

	return batch, nil
}

// observeQuota feeds the quota go-github parsed from resp to the limiter.
func (c *Client) observeQuota(resp *gh.Response) {
	if resp == nil {
		return
	}
	c.rateLimiter.Observe(resp.Rate)
	quota := c.rateLimiter.Quota()
	logger.Debug("GitHub quota: %d of %d remaining", quota.Remaining, quota.Limit)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return fmt.Errorf("%s: %w", operation, &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		})
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if retryAfter := abuseErr.GetRetryAfter(); retryAfter > 0 {
			resetAt = resetAt.Add(retryAfter)
		}
		return fmt.Errorf("%s: %w", operation, &RateLimitError{ResetAt: resetAt})
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
