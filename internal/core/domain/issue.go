package domain

import (
	"fmt"
	"strings"
	"time"
)

// Issue states as reported by GitHub.
const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
)

// IssueRecord is the subset of a GitHub issue that is mirrored into Notion.
type IssueRecord struct {
	// Number is the repository-scoped issue number (e.g. #42).
	Number int

	// ID is the globally unique GitHub issue id.
	ID int64

	Title string

	// Body is free text and may contain HTML.
	Body string

	// State is "open" or "closed". Empty means the source omitted it.
	State string

	Labels    []Label
	Assignees []string

	// Milestone is the milestone title, empty when the issue has none.
	Milestone string

	// Author is the login of the user who opened the issue.
	Author string

	CreatedAt time.Time
	UpdatedAt time.Time

	// RepositoryURL is the API URL of the owning repository,
	// e.g. https://api.github.com/repos/octo/hello.
	RepositoryURL string

	// Organization overrides the owner derived from RepositoryURL.
	Organization string

	// PullRequest is set when the listing item is a pull request.
	PullRequest bool
}

// Label is a GitHub issue label.
type Label struct {
	Name  string
	Color string
}

// HasState reports whether the record carries an issue state.
func (i IssueRecord) HasState() bool {
	return i.State != ""
}

// Owner returns the organization or user that owns the repository.
func (i IssueRecord) Owner() string {
	if i.Organization != "" {
		return i.Organization
	}
	owner, _ := splitRepositoryURL(i.RepositoryURL)
	return owner
}

// RepoName returns the repository name derived from RepositoryURL.
func (i IssueRecord) RepoName() string {
	_, name := splitRepositoryURL(i.RepositoryURL)
	return name
}

// LabelNames returns the label names in their original order.
func (i IssueRecord) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// splitRepositoryURL returns the last two path segments of a repository URL.
func splitRepositoryURL(u string) (owner, name string) {
	u = strings.TrimSuffix(u, "/")
	parts := strings.Split(u, "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepoRef parses an "owner/name" string.
func ParseRepoRef(s string) (RepoRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoRef{}, fmt.Errorf("%w: repository must be owner/name, got %q", ErrInvalidInput, s)
	}
	return RepoRef{Owner: owner, Name: name}, nil
}

// FullName returns "owner/name".
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the reference is unset.
func (r RepoRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// APIURL returns the GitHub REST URL of the repository.
func (r RepoRef) APIURL() string {
	return "https://api.github.com/repos/" + r.FullName()
}
