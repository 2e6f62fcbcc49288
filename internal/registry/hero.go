package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// HeroProps configures the full-width hero banner.
type HeroProps struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonText      string `json:"buttonText"`
	BackgroundImage string `json:"backgroundImage"`
}

var heroFields = []field[HeroProps]{
	stringField("title", func(p *HeroProps) *string { return &p.Title }),
	stringField("subtitle", func(p *HeroProps) *string { return &p.Subtitle }),
	stringField("buttonText", func(p *HeroProps) *string { return &p.ButtonText }),
	stringField("backgroundImage", func(p *HeroProps) *string { return &p.BackgroundImage }),
}

func heroDefaults() HeroProps {
	return HeroProps{
		Title:           "Welcome to Our Website",
		Subtitle:        "Build amazing experiences with our platform",
		ButtonText:      "Get Started",
		BackgroundImage: "https://images.unsplash.com/photo-1557804506-669a67965ba0?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80",
	}
}

func buildHero(props types.Props) *markup.Node {
	p := valueOf(props, heroFields)

	return markup.El("div", "relative bg-gray-900 text-white",
		markup.El("div", "absolute inset-0 bg-cover bg-center opacity-50").
			With(markup.A("style", "background-image: url('"+p.BackgroundImage+"')")),
		markup.El("div", "relative max-w-7xl mx-auto px-4 py-24 sm:py-32",
			markup.El("div", "text-center",
				markup.TextEl("h1", "text-4xl md:text-6xl font-bold mb-6", p.Title),
				markup.TextEl("p", "text-xl md:text-2xl mb-8 text-gray-300", p.Subtitle),
				markup.TextEl("button", "bg-blue-600 hover:bg-blue-700 text-white px-8 py-3 rounded-lg text-lg font-semibold", p.ButtonText),
			),
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindHero,
		Label:       "Hero Section",
		Description: "Main banner area",
		Icon:        "layout",
		Defaults: func() types.Props {
			return newVariant(types.KindHero, heroDefaults(), heroFields, func(p HeroProps) HeroProps { return p })
		},
		Build: buildHero,
	})
}
