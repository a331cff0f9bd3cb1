package domain

import "time"

// Notion database column names written for every issue.
const (
	PropName         = "Name"
	PropOrganization = "Organization"
	PropRepository   = "Repository"
	PropNumber       = "Number"
	PropBody         = "Body"
	PropAssignees    = "Assignees"
	PropMilestone    = "Milestone"
	PropLabels       = "Labels"
	PropAuthor       = "Author"
	PropCreated      = "Created"
	PropUpdated      = "Updated"
	PropID           = "ID"

	// PropStatus is only written when the issue carries a state.
	PropStatus = "Status"
)

// RequiredProperties lists the columns present on every mapped page.
func RequiredProperties() []string {
	return []string{
		PropName, PropOrganization, PropRepository, PropNumber, PropBody,
		PropAssignees, PropMilestone, PropLabels, PropAuthor, PropCreated,
		PropUpdated, PropID,
	}
}

// PropertyKind is the Notion property type of a value.
type PropertyKind string

// Supported property kinds.
const (
	KindTitle       PropertyKind = "title"
	KindRichText    PropertyKind = "rich_text"
	KindNumber      PropertyKind = "number"
	KindDate        PropertyKind = "date"
	KindSelect      PropertyKind = "select"
	KindMultiSelect PropertyKind = "multi_select"
)

// SelectOption is a single select or multi_select choice.
type SelectOption struct {
	Name string
	// Color is a Notion color name. Empty lets Notion pick one.
	Color string
}

// PropertyValue is one typed property payload. Only the field matching
// Kind is meaningful.
type PropertyValue struct {
	Kind    PropertyKind
	Text    string
	Number  float64
	Date    time.Time
	Options []SelectOption
}

// PageProperties maps column names to property payloads.
type PageProperties map[string]PropertyValue

// Title builds a title property.
func Title(s string) PropertyValue {
	return PropertyValue{Kind: KindTitle, Text: s}
}

// RichText builds a rich_text property.
func RichText(s string) PropertyValue {
	return PropertyValue{Kind: KindRichText, Text: s}
}

// Number builds a number property.
func Number(n float64) PropertyValue {
	return PropertyValue{Kind: KindNumber, Number: n}
}

// Date builds a date property. A zero time produces an empty date.
func Date(t time.Time) PropertyValue {
	return PropertyValue{Kind: KindDate, Date: t}
}

// Select builds a select property.
func Select(name, color string) PropertyValue {
	return PropertyValue{Kind: KindSelect, Options: []SelectOption{{Name: name, Color: color}}}
}

// MultiSelect builds a multi_select property from option names.
func MultiSelect(names []string) PropertyValue {
	opts := make([]SelectOption, 0, len(names))
	for _, n := range names {
		opts = append(opts, SelectOption{Name: n})
	}
	return PropertyValue{Kind: KindMultiSelect, Options: opts}
}

// PageRef is a Notion page as read back from the database.
type PageRef struct {
	ID string

	// Number is the value of the Number column. HasNumber is false when the
	// column is empty or missing.
	Number    int
	HasNumber bool

	// IssueID is the value of the ID column.
	IssueID    int64
	HasIssueID bool
}

// IssuePageIndex maps issue numbers to Notion page ids.
type IssuePageIndex map[int]string

// Contains reports whether an issue number has a page.
func (idx IssuePageIndex) Contains(number int) bool {
	_, ok := idx[number]
	return ok
}
