package domain

import "time"

// ReconcileReport summarises one full reconciliation run.
type ReconcileReport struct {
	RunID      string
	Repository RepoRef
	DryRun     bool

	// Indexed is the number of Notion pages carrying an issue number.
	Indexed int

	// Listed counts issues returned by GitHub, pull requests excluded.
	Listed int

	// PullRequests counts listing items skipped because they are PRs.
	PullRequests int

	// Missing lists issue numbers that had no page when the run started.
	Missing []int

	Created []CreatedPage
	Failed  []CreateFailure

	StartedAt  time.Time
	FinishedAt time.Time
}

// CreatedPage records a page created for an issue.
type CreatedPage struct {
	Number int
	PageID string
}

// CreateFailure records an issue whose page could not be created.
type CreateFailure struct {
	Number int
	ID     int64
	Err    error
}

// Succeeded reports whether every create in the run succeeded.
func (r *ReconcileReport) Succeeded() bool {
	return len(r.Failed) == 0
}

// Duration returns how long the run took.
func (r *ReconcileReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
