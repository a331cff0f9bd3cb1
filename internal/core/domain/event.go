package domain

// Trigger event names as delivered by GitHub.
const (
	EventIssues           = "issues"
	EventWorkflowDispatch = "workflow_dispatch"
	EventSchedule         = "schedule"
	EventPing             = "ping"
)

// ActionOpened is the issues webhook action that creates a page.
const ActionOpened = "opened"

// IssueEvent is a decoded issues webhook delivery.
type IssueEvent struct {
	Action     string
	Issue      IssueRecord
	Repository RepoRef
}

// Trigger is what started a run: an event name and, for issues events,
// the decoded payload.
type Trigger struct {
	EventName string

	// Repository is the repository the event was delivered for, when known.
	Repository RepoRef

	Issue *IssueEvent
}

// SyncOutcome is the terminal state of an incremental sync.
type SyncOutcome string

// Incremental sync outcomes.
const (
	OutcomeCreated         SyncOutcome = "created"
	OutcomeUpdated         SyncOutcome = "updated"
	OutcomeSkippedNotFound SyncOutcome = "skipped_not_found"
)
