package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Feature is one entry of a features grid.
type Feature struct {
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Icon        string `json:"icon" mapstructure:"icon"`
}

// FeaturesProps configures the three column feature grid.
type FeaturesProps struct {
	Title string    `json:"title"`
	Items []Feature `json:"items"`
}

var featuresFields = []field[FeaturesProps]{
	stringField("title", func(p *FeaturesProps) *string { return &p.Title }),
	listField("items", func(p *FeaturesProps) *[]Feature { return &p.Items }),
}

func featuresDefaults() FeaturesProps {
	return FeaturesProps{
		Title: "Our Features",
		Items: []Feature{
			{Title: "Fast", Description: "Lightning fast performance", Icon: "zap"},
			{Title: "Secure", Description: "Enterprise-grade security", Icon: "shield"},
			{Title: "Scalable", Description: "Grows with your business", Icon: "trending-up"},
		},
	}
}

func cloneFeatures(p FeaturesProps) FeaturesProps {
	p.Items = append([]Feature(nil), p.Items...)
	return p
}

func buildFeatures(props types.Props) *markup.Node {
	p := valueOf(props, featuresFields)

	grid := markup.El("div", "grid md:grid-cols-3 gap-8")
	for _, item := range p.Items {
		grid.Append(markup.El("div", "text-center p-6 bg-white rounded-lg shadow-sm",
			icon(item.Icon, "w-12 h-12 text-blue-600 mx-auto mb-4"),
			markup.TextEl("h3", "text-xl font-semibold mb-2", item.Title),
			markup.TextEl("p", "text-gray-600", item.Description),
		))
	}

	return markup.El("div", "py-16 bg-gray-50",
		markup.El("div", "max-w-7xl mx-auto px-4",
			markup.El("div", "text-center mb-12",
				markup.TextEl("h2", "text-3xl font-bold text-gray-900", p.Title),
			),
			grid,
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindFeatures,
		Label:       "Features Grid",
		Description: "Showcase features",
		Icon:        "star",
		Defaults: func() types.Props {
			return newVariant(types.KindFeatures, featuresDefaults(), featuresFields, cloneFeatures)
		},
		Build: buildFeatures,
	})
}
