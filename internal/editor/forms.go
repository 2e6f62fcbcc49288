package editor

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/blockcraft/internal/registry"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Control is the input widget a form field is edited with.
type Control string

const (
	ControlText      Control = "text"
	ControlTextarea  Control = "textarea"
	ControlURL       Control = "url"
	ControlNumber    Control = "number"
	ControlSelect    Control = "select"
	ControlList      Control = "list"
	ControlChecklist Control = "checklist"
	ControlItems     Control = "items"
)

// Option is one choice of a select or checklist.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Condition hides a field unless props[Key] equals Equals.
type Condition struct {
	Key    string `json:"key"`
	Equals string `json:"equals"`
}

// FieldSpec describes one field of a property form. List and items fields
// carry the template appended by their add button.
type FieldSpec struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Control     Control     `json:"control"`
	Placeholder string      `json:"placeholder,omitempty"`
	Rows        int         `json:"rows,omitempty"`
	Min         int         `json:"min,omitempty"`
	Max         int         `json:"max,omitempty"`
	Options     []Option    `json:"options,omitempty"`
	NewItem     any         `json:"newItem,omitempty"`
	AddLabel    string      `json:"addLabel,omitempty"`
	ItemLabel   string      `json:"itemLabel,omitempty"`
	ItemFields  []FieldSpec `json:"itemFields,omitempty"`
	VisibleWhen *Condition  `json:"visibleWhen,omitempty"`
}

// FormFieldChoices are the inputs a contact form can be toggled to show.
var FormFieldChoices = []string{"name", "email", "message", "phone"}

func text(key, label string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Control: ControlText}
}

func textarea(key, label string, rows int) FieldSpec {
	return FieldSpec{Key: key, Label: label, Control: ControlTextarea, Rows: rows}
}

func titled(values ...string) []Option {
	caser := cases.Title(language.English)
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: caser.String(v)}
	}
	return out
}

// Form returns the property form of kind. Unrecognized kinds have no form.
func Form(kind types.Kind) []FieldSpec {
	switch kind {
	case types.KindLayout:
		return []FieldSpec{
			{Key: "layoutType", Label: "Layout Type", Control: ControlSelect, Options: titled("flex", "grid")},
			{
				Key: "flexDirection", Label: "Flex Direction", Control: ControlSelect,
				Options:     []Option{{Value: "flex-col", Label: "Column"}, {Value: "flex-row", Label: "Row"}},
				VisibleWhen: &Condition{Key: "layoutType", Equals: "flex"},
			},
			{
				Key: "gridCols", Label: "Grid Columns", Control: ControlNumber, Min: 1, Max: 12,
				VisibleWhen: &Condition{Key: "layoutType", Equals: "grid"},
			},
		}
	case types.KindHero:
		return []FieldSpec{
			text("title", "Title"),
			textarea("subtitle", "Subtitle", 3),
			text("buttonText", "Button Text"),
			{Key: "backgroundImage", Label: "Background Image", Control: ControlURL, Placeholder: "Image URL"},
		}
	case types.KindNavbar:
		return []FieldSpec{
			text("brand", "Brand Name"),
			{Key: "links", Label: "Navigation Links", Control: ControlList, NewItem: "New Link", AddLabel: "Add Link"},
		}
	case types.KindFeatures:
		return []FieldSpec{
			text("title", "Section Title"),
			{
				Key: "items", Label: "Features", Control: ControlItems, ItemLabel: "Feature", AddLabel: "Add Feature",
				NewItem: registry.Feature{Title: "New Feature", Description: "Feature description", Icon: "star"},
				ItemFields: []FieldSpec{
					{Key: "title", Control: ControlText, Placeholder: "Feature title"},
					{Key: "description", Control: ControlTextarea, Placeholder: "Feature description", Rows: 2},
				},
			},
		}
	case types.KindPricing:
		return []FieldSpec{
			text("title", "Section Title"),
			{
				Key: "plans", Label: "Plans", Control: ControlItems, ItemLabel: "Plan", AddLabel: "Add Plan",
				NewItem: registry.Plan{Name: "New Plan", Price: "$0", Features: []string{"Feature"}},
				ItemFields: []FieldSpec{
					{Key: "name", Control: ControlText, Placeholder: "Plan name"},
					{Key: "price", Control: ControlText, Placeholder: "Price"},
					{Key: "features", Control: ControlList, NewItem: "Feature", AddLabel: "Add Feature"},
				},
			},
		}
	case types.KindForm:
		return []FieldSpec{
			text("title", "Form Title"),
			text("submitText", "Submit Button Text"),
			{Key: "fields", Label: "Form Fields", Control: ControlChecklist, Options: titled(FormFieldChoices...)},
		}
	case types.KindTestimonial:
		return []FieldSpec{
			text("title", "Title"),
			textarea("quote", "Quote", 3),
			text("author", "Author"),
			text("role", "Role"),
		}
	case types.KindCTA:
		return []FieldSpec{
			text("title", "Title"),
			textarea("subtitle", "Subtitle", 2),
			text("buttonText", "Button Text"),
		}
	case types.KindTeam:
		return []FieldSpec{
			text("title", "Section Title"),
			{
				Key: "members", Label: "Team Members", Control: ControlItems, ItemLabel: "Member", AddLabel: "Add Member",
				NewItem: registry.Member{Name: "New Member", Role: "Role", Bio: "Short bio", Image: "https://via.placeholder.com/150"},
				ItemFields: []FieldSpec{
					{Key: "name", Control: ControlText, Placeholder: "Member Name"},
					{Key: "role", Control: ControlText, Placeholder: "Role"},
					{Key: "bio", Control: ControlTextarea, Placeholder: "Bio", Rows: 2},
					{Key: "image", Control: ControlURL, Placeholder: "Image URL"},
				},
			},
		}
	case types.KindFooter:
		return []FieldSpec{
			text("brand", "Brand Name"),
			{Key: "links", Label: "Quick Links", Control: ControlList, NewItem: "New Link", AddLabel: "Add Link"},
			{Key: "social", Label: "Social Icons", Control: ControlChecklist, Options: titled("twitter", "facebook", "linkedin")},
		}
	default:
		return nil
	}
}

// Heading is the title shown above the form of kind.
func Heading(kind types.Kind) string {
	return cases.Title(language.English).String(string(kind)) + " Properties"
}

// Unavailable is the message shown for kinds without a form.
func Unavailable(kind types.Kind) string {
	return "Properties for " + string(kind) + " component are not yet available."
}

// Toggle adds value to the string list at props[key] when checked and removes
// every occurrence when unchecked. Adding is idempotent.
func Toggle(p types.Props, key, value string, checked bool) {
	current, _ := p.Get(key)
	rv, ok := sliceOf(current)

	var list []any
	if ok {
		list = generic(rv)
	}

	present := false
	next := make([]any, 0, len(list)+1)
	for _, v := range list {
		if v == value {
			present = true
			if !checked {
				continue
			}
		}
		next = append(next, v)
	}
	if checked && present {
		return
	}
	if checked {
		next = append(next, value)
	}
	p.Set(key, next)
}
