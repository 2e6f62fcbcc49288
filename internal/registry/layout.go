package registry

import (
	"strconv"

	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// LayoutProps configures an empty flex or grid container.
type LayoutProps struct {
	LayoutType    string `json:"layoutType"`
	FlexDirection string `json:"flexDirection"`
	GridCols      int    `json:"gridCols"`
}

var layoutFields = []field[LayoutProps]{
	stringField("layoutType", func(p *LayoutProps) *string { return &p.LayoutType }),
	stringField("flexDirection", func(p *LayoutProps) *string { return &p.FlexDirection }),
	intField("gridCols", func(p *LayoutProps) *int { return &p.GridCols }),
}

func layoutDefaults() LayoutProps {
	return LayoutProps{LayoutType: "flex", FlexDirection: "flex-col", GridCols: 1}
}

// layoutClass returns the container classes. Anything other than "flex" is
// treated as a grid.
func layoutClass(p LayoutProps) string {
	if p.LayoutType == "flex" {
		if p.FlexDirection == "flex-row" {
			return "flex flex-row"
		}
		return "flex flex-col"
	}
	return "grid grid-cols-" + strconv.Itoa(p.GridCols) + " gap-4"
}

func buildLayout(props types.Props) *markup.Node {
	p := valueOf(props, layoutFields)

	n := markup.El("div", "p-4 "+layoutClass(p))
	n.PreviewClass = "border-2 border-dashed border-gray-300 rounded-lg bg-gray-50 m-4"

	hint := markup.TextEl("div", "text-sm text-gray-500 italic text-center p-4", "Layout Block: Drop components here")
	hint.PreviewOnly = true

	return n.Append(hint)
}

func init() {
	Register(Registration{
		Kind:        types.KindLayout,
		Label:       "Layout Block",
		Description: "Container for arranging content",
		Icon:        "rows",
		Defaults: func() types.Props {
			return newVariant(types.KindLayout, layoutDefaults(), layoutFields, func(p LayoutProps) LayoutProps { return p })
		},
		Build: buildLayout,
	})
}
