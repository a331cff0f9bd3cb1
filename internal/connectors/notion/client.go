package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PageStore = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the proactive request rate (requests per second).
	DefaultRate = 3.0

	// DefaultBurst is the token bucket size.
	DefaultBurst = 3

	// DefaultRetries is how often a request rejected with 429 is resent.
	DefaultRetries = 3

	// QueryPageSize is the number of pages requested per database query.
	QueryPageSize = 100
)

// Client is a PageStore bound to a single Notion database.
type Client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	limit      rate.Limit
	burst      int
}

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithRateLimit sets the proactive request rate. rate.Inf disables throttling.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.limit = limit
		o.burst = burst
	}
}

// NewClient creates a client for the given integration token and database.
// Requests rejected with 429 are resent up to DefaultRetries times after
// the delay Notion asks for.
func NewClient(token, databaseID string, opts ...Option) *Client {
	o := options{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limit:      rate.Limit(DefaultRate),
		burst:      DefaultBurst,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.burst < 1 {
		o.burst = 1
	}

	httpClient := *o.httpClient
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = &retryTransport{base: base, retries: DefaultRetries}

	// notionapi resends the drained request on 429; with a single attempt
	// it reports the 429 that retryTransport gave up on instead.
	api := notionapi.NewClient(
		notionapi.Token(token),
		notionapi.WithHTTPClient(&httpClient),
		notionapi.WithRetry(1),
	)

	return &Client{
		api:        api,
		databaseID: notionapi.DatabaseID(databaseID),
		limiter:    rate.NewLimiter(o.limit, o.burst),
	}
}

// CreatePage creates a page in the database and returns its id.
func (c *Client) CreatePage(ctx context.Context, props domain.PageProperties) (string, error) {
	properties, err := toNotionProperties(props)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: properties,
	})
	if err != nil {
		return "", wrapError(err, "create page")
	}

	return string(page.ID), nil
}

// UpdatePage replaces the given properties of an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props domain.PageProperties) error {
	properties, err := toNotionProperties(props)
	if err != nil {
		return fmt.Errorf("update page %s: %w", pageID, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, err = c.api.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: properties,
	})
	if err != nil {
		return wrapError(err, "update page "+pageID)
	}

	return nil
}

// FindPageByIssueID returns the first page whose ID column equals issueID.
func (c *Client) FindPageByIssueID(ctx context.Context, issueID int64) (*domain.PageRef, error) {
	id := float64(issueID)
	resp, err := c.query(ctx, &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: domain.PropID,
			Number:   &notionapi.NumberFilterCondition{Equals: &id},
		},
		PageSize: 1,
	})
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("find page for issue %d", issueID))
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("page for issue %d: %w", issueID, domain.ErrNotFound)
	}

	ref := toPageRef(resp.Results[0])
	return &ref, nil
}

// QueryPages returns one page of database results starting at cursor.
func (c *Client) QueryPages(ctx context.Context, cursor string) (*driven.PageBatch, error) {
	resp, err := c.query(ctx, &notionapi.DatabaseQueryRequest{
		StartCursor: notionapi.Cursor(cursor),
		PageSize:    QueryPageSize,
	})
	if err != nil {
		return nil, wrapError(err, "query database")
	}

	batch := &driven.PageBatch{
		Pages: make([]domain.PageRef, 0, len(resp.Results)),
	}
	for _, page := range resp.Results {
		batch.Pages = append(batch.Pages, toPageRef(page))
	}
	if resp.HasMore {
		batch.NextCursor = string(resp.NextCursor)
	}

	return batch, nil
}

func (c *Client) query(ctx context.Context, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return c.api.Database.Query(ctx, c.databaseID, req)
}
