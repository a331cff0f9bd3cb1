package notion

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/issuesync/internal/logger"
)

const (
	// DefaultRetryAfter is the wait when a 429 carries no usable Retry-After.
	DefaultRetryAfter = time.Second

	// MaxRetryAfter caps the wait between retries.
	MaxRetryAfter = 30 * time.Second
)

// retryTransport resends requests Notion rejected with 429. Every attempt
// gets a fresh copy of the request body. Once retries are spent the last
// 429 response is returned unchanged.
type retryTransport struct {
	base    http.RoundTripper
	retries int
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	getBody, err := bodyFactory(req)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req
		if getBody != nil {
			body, err := getBody()
			if err != nil {
				return nil, fmt.Errorf("rewind request body: %w", err)
			}
			attemptReq = req.Clone(req.Context())
			attemptReq.Body = body
		}

		resp, err := t.base.RoundTrip(attemptReq)
		if err != nil || resp.StatusCode != http.StatusTooManyRequests || attempt >= t.retries {
			return resp, err
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		logger.Debug("Notion rate limited %s %s, retry %d/%d in %s",
			req.Method, req.URL.Path, attempt+1, t.retries, wait)

		timer := time.NewTimer(wait)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}
}

// bodyFactory returns a function producing fresh copies of the request
// body, or nil for requests without one. Bodies without GetBody are read
// into memory once.
func bodyFactory(req *http.Request) (func() (io.ReadCloser, error), error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		req.Body.Close()
		return req.GetBody, nil
	}

	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}, nil
}

// retryAfter parses a Retry-After value in seconds.
func retryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}
	wait := time.Duration(seconds) * time.Second
	if wait > MaxRetryAfter {
		return MaxRetryAfter
	}
	return wait
}
