package registry

import (
	"slices"

	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormFields are the form inputs a contact form can show, in render order.
var FormFields = []string{"name", "email", "message"}

// FormProps configures the contact form.
type FormProps struct {
	Title      string   `json:"title"`
	Fields     []string `json:"fields"`
	SubmitText string   `json:"submitText"`
}

var formFields = []field[FormProps]{
	stringField("title", func(p *FormProps) *string { return &p.Title }),
	stringsField("fields", func(p *FormProps) *[]string { return &p.Fields }),
	stringField("submitText", func(p *FormProps) *string { return &p.SubmitText }),
}

func formDefaults() FormProps {
	return FormProps{
		Title:      "Contact Us",
		Fields:     []string{"name", "email", "message"},
		SubmitText: "Send Message",
	}
}

func cloneForm(p FormProps) FormProps {
	p.Fields = append([]string(nil), p.Fields...)
	return p
}

const inputClass = "w-full px-3 py-2 border border-gray-300 rounded-md"

func formInput(name string) *markup.Node {
	label := markup.TextEl("label", "block text-sm font-medium text-gray-700 mb-2",
		cases.Title(language.English).String(name))

	switch name {
	case "email":
		return markup.El("div", "mb-4", label,
			markup.El("input", inputClass).With(markup.A("type", "email")))
	case "message":
		return markup.El("div", "mb-6", label,
			markup.El("textarea", inputClass).With(markup.A("rows", "4")))
	default:
		return markup.El("div", "mb-4", label,
			markup.El("input", inputClass).With(markup.A("type", "text")))
	}
}

func buildForm(props types.Props) *markup.Node {
	p := valueOf(props, formFields)

	form := markup.El("form", "bg-white p-8 rounded-lg shadow-sm")
	for _, name := range FormFields {
		if slices.Contains(p.Fields, name) {
			form.Append(formInput(name))
		}
	}
	form.Append(markup.TextEl("button", "w-full bg-blue-600 text-white py-2 rounded-lg hover:bg-blue-700", p.SubmitText).
		With(markup.A("type", "submit")))

	return markup.El("div", "py-16 bg-gray-50",
		markup.El("div", "max-w-2xl mx-auto px-4",
			markup.El("div", "text-center mb-8",
				markup.TextEl("h2", "text-3xl font-bold text-gray-900", p.Title),
			),
			form,
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindForm,
		Label:       "Contact Form",
		Description: "User contact form",
		Icon:        "mail",
		Defaults: func() types.Props {
			return newVariant(types.KindForm, formDefaults(), formFields, cloneForm)
		},
		Build: buildForm,
	})
}
