package notion

import (
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// toNotionProperties converts domain properties to their notionapi form.
func toNotionProperties(props domain.PageProperties) (notionapi.Properties, error) {
	out := make(notionapi.Properties, len(props))
	for name, value := range props {
		p, err := toNotionProperty(value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}

func toNotionProperty(v domain.PropertyValue) (notionapi.Property, error) {
	switch v.Kind {
	case domain.KindTitle:
		return notionapi.TitleProperty{Title: richText(v.Text)}, nil
	case domain.KindRichText:
		return notionapi.RichTextProperty{RichText: richText(v.Text)}, nil
	case domain.KindNumber:
		return notionapi.NumberProperty{Number: v.Number}, nil
	case domain.KindDate:
		if v.Date.IsZero() {
			return notionapi.DateProperty{}, nil
		}
		start := notionapi.Date(v.Date)
		return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}, nil
	case domain.KindSelect:
		if len(v.Options) == 0 {
			return notionapi.SelectProperty{}, nil
		}
		return notionapi.SelectProperty{Select: toOption(v.Options[0])}, nil
	case domain.KindMultiSelect:
		opts := make([]notionapi.Option, 0, len(v.Options))
		for _, o := range v.Options {
			opts = append(opts, toOption(o))
		}
		return notionapi.MultiSelectProperty{MultiSelect: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProperty, v.Kind)
	}
}

// richText wraps s in a single text run. Empty text writes an empty array.
func richText(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}

func toOption(o domain.SelectOption) notionapi.Option {
	return notionapi.Option{Name: o.Name, Color: notionapi.Color(o.Color)}
}

// toPageRef reads the correlation columns of a page.
func toPageRef(page notionapi.Page) domain.PageRef {
	ref := domain.PageRef{ID: string(page.ID)}
	if n, ok := numberValue(page.Properties[domain.PropNumber]); ok {
		ref.Number = int(n)
		ref.HasNumber = true
	}
	if n, ok := numberValue(page.Properties[domain.PropID]); ok {
		ref.IssueID = int64(n)
		ref.HasIssueID = true
	}
	return ref
}

// numberValue extracts a number property value. An empty cell decodes to
// zero, and zero is never a valid issue number or id, so it reads as unset.
func numberValue(p notionapi.Property) (float64, bool) {
	var n float64
	switch prop := p.(type) {
	case *notionapi.NumberProperty:
		if prop == nil {
			return 0, false
		}
		n = prop.Number
	case notionapi.NumberProperty:
		n = prop.Number
	default:
		return 0, false
	}
	return n, n != 0
}
