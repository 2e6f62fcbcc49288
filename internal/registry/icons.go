package registry

import "github.com/conneroisu/blockcraft/internal/markup"

var knownIcons = map[string]bool{
	"star":        true,
	"shield":      true,
	"trending-up": true,
	"zap":         true,
	"twitter":     true,
	"facebook":    true,
	"linkedin":    true,
	"quote":       true,
}

// iconName maps an icon prop to a lucide icon, defaulting to star.
func iconName(name string) string {
	if knownIcons[name] {
		return name
	}
	return "star"
}

func icon(name, class string) *markup.Node {
	return markup.El("i", class).With(markup.A("data-lucide", iconName(name)))
}
