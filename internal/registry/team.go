package registry

import (
	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Member is one person on a team grid.
type Member struct {
	Name  string `json:"name" mapstructure:"name"`
	Role  string `json:"role" mapstructure:"role"`
	Bio   string `json:"bio" mapstructure:"bio"`
	Image string `json:"image" mapstructure:"image"`
}

// TeamProps configures the team grid.
type TeamProps struct {
	Title   string   `json:"title"`
	Members []Member `json:"members"`
}

var teamFields = []field[TeamProps]{
	stringField("title", func(p *TeamProps) *string { return &p.Title }),
	listField("members", func(p *TeamProps) *[]Member { return &p.Members }),
}

func teamDefaults() TeamProps {
	return TeamProps{
		Title: "Meet Our Amazing Team",
		Members: []Member{
			{
				Name:  "John Smith",
				Role:  "Founder",
				Bio:   "Expert in full-stack development and product design.",
				Image: "https://images.unsplash.com/photo-1570295999919-56ceb5ecca61?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MTl8fHByb2ZpbGUlMjBwaG90b3xlbnwwfHwwfHx8MA%3D%3D",
			},
			{
				Name:  "Sarah Chen",
				Role:  "Lead Designer",
				Bio:   "Passionate about creating beautiful and intuitive user interfaces.",
				Image: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8Mjh8fHByb2ZpbGUlMjBwaG90b3xlbnwwfHwwfHx8MA%3D%3D",
			},
			{
				Name:  "Alex Johnson",
				Role:  "Backend Engineer",
				Bio:   "Specializes in scalable cloud infrastructure and API development.",
				Image: "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8NTJ8fHByb2ZpbGUlMjBwaG90b3xlbnwwfHwwfHx8MA%3D%3D",
			},
		},
	}
}

func cloneTeam(p TeamProps) TeamProps {
	p.Members = append([]Member(nil), p.Members...)
	return p
}

func buildTeam(props types.Props) *markup.Node {
	p := valueOf(props, teamFields)

	grid := markup.El("div", "grid md:grid-cols-3 gap-8")
	for _, m := range p.Members {
		grid.Append(markup.El("div", "p-6 bg-gray-50 rounded-lg",
			markup.El("img", "w-24 h-24 rounded-full mx-auto mb-4 object-cover").
				With(markup.A("src", m.Image), markup.A("alt", m.Name)),
			markup.TextEl("h3", "text-xl font-semibold text-gray-900", m.Name),
			markup.TextEl("p", "text-blue-600 mb-2", m.Role),
			markup.TextEl("p", "text-gray-600 text-sm", m.Bio),
		))
	}

	return markup.El("div", "bg-white py-16",
		markup.El("div", "max-w-7xl mx-auto px-4 text-center",
			markup.TextEl("h2", "text-3xl font-bold text-gray-900 mb-12", p.Title),
			grid,
		),
	)
}

func init() {
	Register(Registration{
		Kind:        types.KindTeam,
		Label:       "Team Section",
		Description: "Display your team members",
		Icon:        "users",
		Defaults: func() types.Props {
			return newVariant(types.KindTeam, teamDefaults(), teamFields, cloneTeam)
		},
		Build: buildTeam,
	})
}
