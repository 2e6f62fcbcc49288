package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// NavbarProps configures the top navigation bar.
type NavbarProps struct {
	Brand string   `json:"brand"`
	Links []string `json:"links"`
	Style string   `json:"style"`
}

var navbarFields = []field[NavbarProps]{
	stringField("brand", func(p *NavbarProps) *string { return &p.Brand }),
	stringsField("links", func(p *NavbarProps) *[]string { return &p.Links }),
	stringField("style", func(p *NavbarProps) *string { return &p.Style }),
}

func navbarDefaults() NavbarProps {
	return NavbarProps{
		Brand: "Brand",
		Links: []string{"Home", "About", "Services", "Contact"},
		Style: "modern",
	}
}

func cloneNavbar(p NavbarProps) NavbarProps {
	p.Links = append([]string(nil), p.Links...)
	return p
}

func buildNavbar(props types.Props) *markup.Node {
	p := valueOf(props, navbarFields)

	links := markup.El("div", "hidden md:flex space-x-8")
	for _, link := range p.Links {
		links.Append(markup.TextEl("a", "text-gray-700 hover:text-blue-600", link).With(markup.A("href", "#")))
	}

	return markup.El("nav", "bg-white shadow-sm border-b",
		markup.El("div", "max-w-7xl mx-auto px-4 sm:px-6 lg:px-8",
			markup.El("div", "flex justify-between items-center h-16",
				markup.TextEl("div", "text-xl font-bold text-gray-900", p.Brand),
				links,
			),
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindNavbar,
		Label:       "Navigation Bar",
		Description: "Website navigation",
		Icon:        "navigation",
		Defaults: func() types.Props {
			return newVariant(types.KindNavbar, navbarDefaults(), navbarFields, cloneNavbar)
		},
		Build: buildNavbar,
	})
}
