// Package github reads issues from a GitHub repository and decodes GitHub
// webhook deliveries into domain types.
//
// # Architecture
//
// The package implements [driven.IssueSource] and comprises:
//
//   - Client: go-github wrapper with rate limiting, one listing page per call
//   - RateLimiter: proactive token bucket plus X-RateLimit-* header tracking
//   - ParseTrigger: webhook / Actions event payload decoding
//
// # Authentication
//
// Any token accepted by the REST API works: the Actions GITHUB_TOKEN, a
// classic or fine-grained Personal Access Token, or an installation token.
// Listing issues of a private repository needs issues read access.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits requests to roughly
//     1.2 requests per second, staying under the 5,000/hour limit.
//
//  2. Reactive handling: the client records X-RateLimit-Remaining and
//     X-RateLimit-Reset. When fewer than MinBuffer requests remain it waits
//     until the reset time before continuing.
//
// # Pull Requests
//
// GitHub's issues endpoint also returns pull requests. They are returned
// with domain.IssueRecord.PullRequest set; callers decide whether to skip
// them.
//
// # Example Usage
//
//	client := github.NewClientWithToken(ctx, token)
//	batch, err := client.ListIssues(ctx, domain.RepoRef{Owner: "octo", Name: "hello"}, 0)
//	for _, issue := range batch.Issues {
//	    // ...
//	}
package github
