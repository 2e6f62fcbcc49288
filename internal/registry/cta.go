package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// CTAProps configures the call-to-action banner.
type CTAProps struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
}

var ctaFields = []field[CTAProps]{
	stringField("title", func(p *CTAProps) *string { return &p.Title }),
	stringField("subtitle", func(p *CTAProps) *string { return &p.Subtitle }),
	stringField("buttonText", func(p *CTAProps) *string { return &p.ButtonText }),
}

func ctaDefaults() CTAProps {
	return CTAProps{
		Title:      "Ready to Build Something Amazing?",
		Subtitle:   "Join thousands of developers and designers using our platform to bring their ideas to life.",
		ButtonText: "Start Your Free Trial",
	}
}

func buildCTA(props types.Props) *markup.Node {
	p := valueOf(props, ctaFields)

	return markup.El("div", "bg-blue-600 py-16",
		markup.El("div", "max-w-4xl mx-auto text-center px-4",
			markup.TextEl("h2", "text-3xl md:text-4xl font-bold text-white mb-4", p.Title),
			markup.TextEl("p", "text-lg text-blue-100 mb-8", p.Subtitle),
			markup.TextEl("button", "bg-white text-blue-600 px-8 py-3 rounded-lg font-semibold hover:bg-gray-100", p.ButtonText),
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindCTA,
		Label:       "Call to Action",
		Description: "A strong call to action",
		Icon:        "rocket",
		Defaults: func() types.Props {
			return newVariant(types.KindCTA, ctaDefaults(), ctaFields, func(p CTAProps) CTAProps { return p })
		},
		Build: buildCTA,
	})
}
