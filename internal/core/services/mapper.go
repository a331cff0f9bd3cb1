package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

const (
	// MaxTextLength is the longest text written to a single property.
	MaxTextLength = 1000

	// TruncationMarker ends text cut to MaxTextLength.
	TruncationMarker = "…"
)

// Notion colors of the Status options.
const (
	colorOpen   = "green"
	colorClosed = "red"
)

// htmlPairPattern matches a <tag>...</tag> span on a single line.
// Nested or multi-line markup is not handled.
var htmlPairPattern = regexp.MustCompile(`<.*>.*</.*>`)

// PropertyMapper converts GitHub issues into Notion page properties.
// It performs no I/O and is safe for concurrent use.
type PropertyMapper struct{}

// NewPropertyMapper creates a new property mapper.
func NewPropertyMapper() *PropertyMapper {
	return &PropertyMapper{}
}

// Map returns the full property set for an issue. Absent optional fields
// map to empty text or empty option lists. Status is only set when the
// issue carries a state.
func (m *PropertyMapper) Map(issue domain.IssueRecord) domain.PageProperties {
	props := domain.PageProperties{
		domain.PropName:         domain.Title(truncate(issue.Title)),
		domain.PropOrganization: domain.RichText(truncate(issue.Owner())),
		domain.PropRepository:   domain.RichText(truncate(issue.RepoName())),
		domain.PropNumber:       domain.Number(float64(issue.Number)),
		domain.PropBody:         domain.RichText(truncate(StripHTML(issue.Body))),
		domain.PropAssignees:    domain.MultiSelect(issue.Assignees),
		domain.PropMilestone:    domain.RichText(truncate(issue.Milestone)),
		domain.PropLabels:       domain.MultiSelect(issue.LabelNames()),
		domain.PropAuthor:       domain.RichText(truncate(issue.Author)),
		domain.PropCreated:      domain.Date(issue.CreatedAt),
		domain.PropUpdated:      domain.Date(issue.UpdatedAt),
		domain.PropID:           domain.Number(float64(issue.ID)),
	}

	if issue.HasState() {
		props[domain.PropStatus] = statusOption(issue.State)
	}

	return props
}

// statusOption maps an issue state to the Status select option.
func statusOption(state string) domain.PropertyValue {
	switch strings.ToLower(state) {
	case domain.IssueStateClosed:
		return domain.Select("Closed", colorClosed)
	case domain.IssueStateOpen:
		return domain.Select("Open", colorOpen)
	default:
		return domain.Select(strings.ToUpper(state[:1])+state[1:], "")
	}
}

// StripHTML removes <tag>...</tag> spans from text. Best effort only.
func StripHTML(s string) string {
	return htmlPairPattern.ReplaceAllString(s, "")
}

// truncate cuts text longer than MaxTextLength characters to
// MaxTextLength-1 characters followed by TruncationMarker.
func truncate(s string) string {
	if len(s) <= MaxTextLength {
		return s
	}
	runes := []rune(s)
	if len(runes) <= MaxTextLength {
		return s
	}
	return string(runes[:MaxTextLength-1]) + TruncationMarker
}
