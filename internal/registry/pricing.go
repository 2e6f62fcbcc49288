package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Plan is one pricing tier.
type Plan struct {
	Name     string   `json:"name" mapstructure:"name"`
	Price    string   `json:"price" mapstructure:"price"`
	Features []string `json:"features" mapstructure:"features"`
}

// PricingProps configures the pricing table.
type PricingProps struct {
	Title string `json:"title"`
	Plans []Plan `json:"plans"`
}

var pricingFields = []field[PricingProps]{
	stringField("title", func(p *PricingProps) *string { return &p.Title }),
	listField("plans", func(p *PricingProps) *[]Plan { return &p.Plans }),
}

func pricingDefaults() PricingProps {
	return PricingProps{
		Title: "Choose Your Plan",
		Plans: []Plan{
			{Name: "Basic", Price: "$9", Features: []string{"Feature 1", "Feature 2"}},
			{Name: "Pro", Price: "$29", Features: []string{"All Basic", "Feature 3", "Feature 4"}},
			{Name: "Enterprise", Price: "$99", Features: []string{"All Pro", "Premium Support"}},
		},
	}
}

func clonePricing(p PricingProps) PricingProps {
	plans := make([]Plan, len(p.Plans))
	for i, plan := range p.Plans {
		plan.Features = append([]string(nil), plan.Features...)
		plans[i] = plan
	}
	if p.Plans == nil {
		plans = nil
	}
	p.Plans = plans
	return p
}

func buildPricing(props types.Props) *markup.Node {
	p := valueOf(props, pricingFields)

	grid := markup.El("div", "grid md:grid-cols-3 gap-8")
	for _, plan := range p.Plans {
		features := markup.El("ul", "space-y-2 mb-6")
		for _, f := range plan.Features {
			features.Append(markup.TextEl("li", "text-gray-600", f))
		}
		grid.Append(markup.El("div", "border border-gray-200 rounded-lg p-6 text-center",
			markup.TextEl("h3", "text-xl font-semibold mb-4", plan.Name),
			markup.TextEl("div", "text-3xl font-bold text-blue-600 mb-6", plan.Price+"/mo"),
			features,
			markup.TextEl("button", "w-full bg-blue-600 text-white py-2 rounded-lg hover:bg-blue-700", "Choose Plan"),
		))
	}

	return markup.El("div", "py-16 bg-white",
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
		Kind:        types.KindPricing,
		Label:       "Pricing Table",
		Description: "Pricing plans",
		Icon:        "dollar-sign",
		Defaults: func() types.Props {
			return newVariant(types.KindPricing, pricingDefaults(), pricingFields, clonePricing)
		},
		Build: buildPricing,
	})
}
