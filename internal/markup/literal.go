package markup

import "strings"

const indentUnit = "    "

// Literal serializes the tree as indented HTML starting at the given depth.
//
// Text and attribute values are interpolated verbatim. User-entered content
// therefore reaches the exported document unescaped; this is a known
// injection surface of the static export and is kept deliberately.
func Literal(n *Node, depth int) string {
	var b strings.Builder
	writeLiteral(&b, n, depth)
	return b.String()
}

func writeLiteral(b *strings.Builder, n *Node, depth int) {
	if n == nil || n.PreviewOnly {
		return
	}
	indent := strings.Repeat(indentUnit, depth)

	if n.Tag == "" {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(n.Text)
		return
	}

	b.WriteString("\n")
	b.WriteString(indent)
	writeOpenTag(b, n, n.Class, func(s string) string { return s })

	if isVoid(n.Tag) {
		return
	}

	children := emittedChildren(n)
	if len(children) == 0 {
		b.WriteString(n.Text)
		b.WriteString("</" + n.Tag + ">")
		return
	}

	if n.Text != "" {
		b.WriteString("\n")
		b.WriteString(indent + indentUnit)
		b.WriteString(n.Text)
	}
	for _, c := range children {
		writeLiteral(b, c, depth+1)
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString("</" + n.Tag + ">")
}

func emittedChildren(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil && !c.PreviewOnly {
			out = append(out, c)
		}
	}
	return out
}

func writeOpenTag(b *strings.Builder, n *Node, class string, esc func(string) string) {
	b.WriteString("<" + n.Tag)
	if class != "" {
		b.WriteString(` class="` + esc(class) + `"`)
	}
	for _, a := range n.Attrs {
		b.WriteString(" " + a.Name + `="` + esc(a.Value) + `"`)
	}
	if isVoid(n.Tag) {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
}
