package markup

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PreviewOnlyAttr marks preview chrome in the rendered preview so inspectors
// can tell it apart from content.
const PreviewOnlyAttr = "data-preview-only"

// Component returns the preview projection of the tree. Unlike Literal, text
// and attribute values are escaped and preview chrome is included.
func Component(n *Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writePreview(&b, n)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writePreview(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		b.WriteString(templ.EscapeString(n.Text))
		return
	}

	class := n.Class
	if n.PreviewClass != "" {
		class = strings.TrimSpace(class + " " + n.PreviewClass)
	}
	if n.PreviewOnly {
		marked := *n
		marked.Attrs = append(append([]Attr(nil), n.Attrs...), A(PreviewOnlyAttr, "true"))
		n = &marked
	}
	writeOpenTag(b, n, class, templ.EscapeString)
	if isVoid(n.Tag) {
		return
	}
	b.WriteString(templ.EscapeString(n.Text))
	for _, c := range n.Children {
		writePreview(b, c)
	}
	b.WriteString("</" + n.Tag + ">")
}
