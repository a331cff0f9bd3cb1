package github

import (
	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// toIssueRecord converts a go-github issue. fallbackRepoURL is used when
// the issue does not carry repository_url.
func toIssueRecord(issue *gh.Issue, fallbackRepoURL string) domain.IssueRecord {
	labels := make([]domain.Label, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, domain.Label{Name: l.GetName(), Color: l.GetColor()})
	}

	assignees := make([]string, 0, len(issue.Assignees))
	for _, a := range issue.Assignees {
		assignees = append(assignees, a.GetLogin())
	}

	repoURL := issue.GetRepositoryURL()
	if repoURL == "" {
		repoURL = fallbackRepoURL
	}

	return domain.IssueRecord{
		Number:        issue.GetNumber(),
		ID:            issue.GetID(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		State:         issue.GetState(),
		Labels:        labels,
		Assignees:     assignees,
		Milestone:     issue.GetMilestone().GetTitle(),
		Author:        issue.GetUser().GetLogin(),
		CreatedAt:     issue.GetCreatedAt().Time,
		UpdatedAt:     issue.GetUpdatedAt().Time,
		RepositoryURL: repoURL,
		PullRequest:   issue.IsPullRequest(),
	}
}
