package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// FooterProps configures the page footer.
type FooterProps struct {
	Brand  string   `json:"brand"`
	Links  []string `json:"links"`
	Social []string `json:"social"`
}

var footerFields = []field[FooterProps]{
	stringField("brand", func(p *FooterProps) *string { return &p.Brand }),
	stringsField("links", func(p *FooterProps) *[]string { return &p.Links }),
	stringsField("social", func(p *FooterProps) *[]string { return &p.Social }),
}

func footerDefaults() FooterProps {
	return FooterProps{
		Brand:  "Brand",
		Links:  []string{"Privacy", "Terms", "Support"},
		Social: []string{"twitter", "facebook", "linkedin"},
	}
}

func cloneFooter(p FooterProps) FooterProps {
	p.Links = append([]string(nil), p.Links...)
	p.Social = append([]string(nil), p.Social...)
	return p
}

func buildFooter(props types.Props) *markup.Node {
	p := valueOf(props, footerFields)

	links := markup.El("ul", "space-y-2")
	for _, link := range p.Links {
		links.Append(markup.El("li", "",
			markup.TextEl("a", "text-gray-400 hover:text-white", link).With(markup.A("href", "#")),
		))
	}

	social := markup.El("div", "flex space-x-4")
	for _, s := range p.Social {
		social.Append(icon(s, "w-5 h-5 text-gray-400 hover:text-white cursor-pointer"))
	}

	return markup.El("footer", "bg-gray-900 text-white py-12",
		markup.El("div", "max-w-7xl mx-auto px-4",
			markup.El("div", "grid md:grid-cols-3 gap-8",
				markup.El("div", "",
					markup.TextEl("div", "text-xl font-bold mb-4", p.Brand),
					markup.TextEl("p", "text-gray-400", "Building amazing experiences for the web."),
				),
				markup.El("div", "",
					markup.TextEl("h4", "font-semibold mb-4", "Quick Links"),
					links,
				),
				markup.El("div", "",
					markup.TextEl("h4", "font-semibold mb-4", "Follow Us"),
					social,
				),
			),
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindFooter,
		Label:       "Footer",
		Description: "Page footer",
		Icon:        "layout",
		Defaults: func() types.Props {
			return newVariant(types.KindFooter, footerDefaults(), footerFields, cloneFooter)
		},
		Build: buildFooter,
	})
}
