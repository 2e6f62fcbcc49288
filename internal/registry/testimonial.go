package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// TestimonialProps configures a single customer quote.
type TestimonialProps struct {
	Title  string `json:"title"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

var testimonialFields = []field[TestimonialProps]{
	stringField("title", func(p *TestimonialProps) *string { return &p.Title }),
	stringField("quote", func(p *TestimonialProps) *string { return &p.Quote }),
	stringField("author", func(p *TestimonialProps) *string { return &p.Author }),
	stringField("role", func(p *TestimonialProps) *string { return &p.Role }),
}

func testimonialDefaults() TestimonialProps {
	return TestimonialProps{
		Title:  "What Our Customers Say",
		Quote:  "This is the most incredible tool I have ever used. It saved my team countless hours and allowed us to launch our project ahead of schedule.",
		Author: "Jane Doe",
		Role:   "CEO, Tech Solutions",
	}
}

func buildTestimonial(props types.Props) *markup.Node {
	p := valueOf(props, testimonialFields)

	return markup.El("div", "bg-gray-50 py-16",
		markup.El("div", "max-w-4xl mx-auto text-center px-4",
			markup.TextEl("h2", "text-3xl font-bold text-gray-900 mb-8", p.Title),
			markup.El("div", "relative p-8 bg-white rounded-lg shadow-xl border-t-4 border-blue-600",
				icon("quote", "absolute top-0 left-0 -mt-3 -ml-3 w-10 h-10 text-blue-600 opacity-20 transform -scale-x-100"),
				markup.TextEl("p", "text-xl italic text-gray-700 mb-4", `"`+p.Quote+`"`),
				markup.TextEl("div", "font-semibold text-lg text-gray-900", p.Author),
				markup.TextEl("div", "text-sm text-gray-500", p.Role),
			),
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindTestimonial,
		Label:       "Testimonial",
		Description: "Customer reviews",
		Icon:        "quote",
		Defaults: func() types.Props {
			return newVariant(types.KindTestimonial, testimonialDefaults(), testimonialFields,
				func(p TestimonialProps) TestimonialProps { return p })
		},
		Build: buildTestimonial,
	})
}
