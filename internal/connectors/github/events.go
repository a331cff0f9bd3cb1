package github

import (
	"encoding/json"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// eventEnvelope holds the fields shared by the event payloads we consume.
type eventEnvelope struct {
	Action       string           `json:"action"`
	Issue        *gh.Issue        `json:"issue"`
	Repository   *gh.Repository   `json:"repository"`
	Organization *gh.Organization `json:"organization"`
}

// ParseTrigger decodes an event delivery into a domain trigger.
// The payload may be empty for events that carry no data of interest.
func ParseTrigger(eventName string, payload []byte) (domain.Trigger, error) {
	trigger := domain.Trigger{EventName: eventName}
	if len(payload) == 0 {
		if eventName == domain.EventIssues {
			return trigger, fmt.Errorf("%w: issues event without payload", ErrInvalidPayload)
		}
		return trigger, nil
	}

	var env eventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return trigger, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if env.Repository != nil {
		trigger.Repository = domain.RepoRef{
			Owner: env.Repository.GetOwner().GetLogin(),
			Name:  env.Repository.GetName(),
		}
		if trigger.Repository.Owner == "" || trigger.Repository.Name == "" {
			if ref, err := domain.ParseRepoRef(env.Repository.GetFullName()); err == nil {
				trigger.Repository = ref
			}
		}
	}

	if eventName != domain.EventIssues {
		return trigger, nil
	}
	if env.Issue == nil {
		return trigger, fmt.Errorf("%w: issues event without issue", ErrInvalidPayload)
	}

	fallbackURL := env.Repository.GetURL()
	if fallbackURL == "" && !trigger.Repository.IsZero() {
		fallbackURL = trigger.Repository.APIURL()
	}
	record := toIssueRecord(env.Issue, fallbackURL)
	record.Organization = env.Organization.GetLogin()

	trigger.Issue = &domain.IssueEvent{
		Action:     env.Action,
		Issue:      record,
		Repository: trigger.Repository,
	}
	return trigger, nil
}

// ParseIssueEvent decodes an issues event payload.
func ParseIssueEvent(payload []byte) (*domain.IssueEvent, error) {
	trigger, err := ParseTrigger(domain.EventIssues, payload)
	if err != nil {
		return nil, err
	}
	return trigger.Issue, nil
}
