package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

const openedPayload = `{
	"action": "opened",
	"issue": {
		"id": 9001,
		"number": 42,
		"title": "Crash on start",
		"body": "<b>boom</b> it broke",
		"state": "open",
		"labels": [{"name": "bug", "color": "d73a4a"}],
		"user": {"login": "alice"},
		"created_at": "2024-03-01T10:00:00Z",
		"repository_url": "https://api.github.com/repos/octo/hello"
	},
	"repository": {
		"name": "hello",
		"full_name": "octo/hello",
		"owner": {"login": "octo"},
		"url": "https://api.github.com/repos/octo/hello"
	},
	"organization": {"login": "octo-org"}
}`

func TestParseTrigger(t *testing.T) {
	t.Run("decodes issues event", func(t *testing.T) {
		trigger, err := ParseTrigger(domain.EventIssues, []byte(openedPayload))

		require.NoError(t, err)
		assert.Equal(t, domain.EventIssues, trigger.EventName)
		assert.Equal(t, domain.RepoRef{Owner: "octo", Name: "hello"}, trigger.Repository)
		require.NotNil(t, trigger.Issue)
		assert.Equal(t, domain.ActionOpened, trigger.Issue.Action)
		assert.Equal(t, trigger.Repository, trigger.Issue.Repository)

		issue := trigger.Issue.Issue
		assert.Equal(t, 42, issue.Number)
		assert.Equal(t, int64(9001), issue.ID)
		assert.Equal(t, "Crash on start", issue.Title)
		assert.Equal(t, "octo-org", issue.Organization)
		assert.Equal(t, "octo-org", issue.Owner())
		assert.Equal(t, "hello", issue.RepoName())
		assert.Equal(t, []string{"bug"}, issue.LabelNames())
	})

	t.Run("falls back to repository url", func(t *testing.T) {
		payload := `{
			"action": "edited",
			"issue": {"id": 1, "number": 1, "title": "t"},
			"repository": {"name": "hello", "owner": {"login": "octo"}, "url": "https://api.github.com/repos/octo/hello"}
		}`

		trigger, err := ParseTrigger(domain.EventIssues, []byte(payload))

		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/repos/octo/hello", trigger.Issue.Issue.RepositoryURL)
		assert.Equal(t, "octo", trigger.Issue.Issue.Owner())
		assert.Empty(t, trigger.Issue.Issue.Organization)
	})

	t.Run("uses full_name when owner missing", func(t *testing.T) {
		payload := `{"repository": {"full_name": "octo/hello"}}`

		trigger, err := ParseTrigger(domain.EventWorkflowDispatch, []byte(payload))

		require.NoError(t, err)
		assert.Equal(t, domain.RepoRef{Owner: "octo", Name: "hello"}, trigger.Repository)
		assert.Nil(t, trigger.Issue)
	})

	t.Run("issues event without issue is invalid", func(t *testing.T) {
		_, err := ParseTrigger(domain.EventIssues, []byte(`{"action": "opened"}`))

		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("issues event without payload is invalid", func(t *testing.T) {
		_, err := ParseTrigger(domain.EventIssues, nil)

		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("malformed json is invalid", func(t *testing.T) {
		_, err := ParseTrigger(domain.EventIssues, []byte(`{not json`))

		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("schedule without payload", func(t *testing.T) {
		trigger, err := ParseTrigger(domain.EventSchedule, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.EventSchedule, trigger.EventName)
		assert.True(t, trigger.Repository.IsZero())
	})

	t.Run("other events pass through", func(t *testing.T) {
		trigger, err := ParseTrigger("push", []byte(`{"ref": "refs/heads/main"}`))

		require.NoError(t, err)
		assert.Equal(t, "push", trigger.EventName)
		assert.Nil(t, trigger.Issue)
	})
}

func TestParseIssueEvent(t *testing.T) {
	t.Run("returns the issue event", func(t *testing.T) {
		event, err := ParseIssueEvent([]byte(openedPayload))

		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, domain.ActionOpened, event.Action)
		assert.Equal(t, 42, event.Issue.Number)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		event, err := ParseIssueEvent(nil)

		assert.ErrorIs(t, err, ErrInvalidPayload)
		assert.Nil(t, event)
	})
}
