package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPropertyConstructors(t *testing.T) {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, PropertyValue{Kind: KindTitle, Text: "Bug"}, Title("Bug"))
	assert.Equal(t, PropertyValue{Kind: KindRichText, Text: "body"}, RichText("body"))
	assert.Equal(t, PropertyValue{Kind: KindNumber, Number: 42}, Number(42))
	assert.Equal(t, PropertyValue{Kind: KindDate, Date: now}, Date(now))
	assert.Equal(t,
		PropertyValue{Kind: KindSelect, Options: []SelectOption{{Name: "Open", Color: "green"}}},
		Select("Open", "green"))
	assert.Equal(t,
		PropertyValue{Kind: KindMultiSelect, Options: []SelectOption{{Name: "a"}, {Name: "b"}}},
		MultiSelect([]string{"a", "b"}))
}

func TestMultiSelect_EmptyIsNotNil(t *testing.T) {
	v := MultiSelect(nil)

	assert.NotNil(t, v.Options)
	assert.Empty(t, v.Options)
}

func TestIssuePageIndex_Contains(t *testing.T) {
	idx := IssuePageIndex{42: "page-a"}

	assert.True(t, idx.Contains(42))
	assert.False(t, idx.Contains(43))
}

func TestReconcileReport(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &ReconcileReport{StartedAt: start}

	assert.True(t, r.Succeeded())
	assert.Zero(t, r.Duration())

	r.FinishedAt = start.Add(3 * time.Second)
	r.Failed = append(r.Failed, CreateFailure{Number: 7})

	assert.False(t, r.Succeeded())
	assert.Equal(t, 3*time.Second, r.Duration())
}
