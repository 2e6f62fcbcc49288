// Package markup holds the element tree every component kind describes itself
// with, and the two serializations of that tree: the escaped preview
// projection and the literal HTML emitted into exported documents.
//
// Both serializations walk the same tree, so anything a kind puts in the tree
// reaches the preview and the export alike.
package markup

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element or, when Tag is empty, a bare text run.
type Node struct {
	Tag   string
	Class string
	Attrs []Attr
	// Text is written before any children.
	Text     string
	Children []*Node
	// PreviewClass is appended to Class in the preview only (canvas chrome).
	PreviewClass string
	// PreviewOnly nodes are skipped by the literal emitter.
	PreviewOnly bool
}

// El creates an element node.
func El(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

// TextEl creates an element whose only content is text.
func TextEl(tag, class, text string) *Node {
	return &Node{Tag: tag, Class: class, Text: text}
}

// With appends attributes and returns n.
func (n *Node) With(attrs ...Attr) *Node {
	n.Attrs = append(n.Attrs, attrs...)
	return n
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// A is shorthand for an attribute.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

var voidTags = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"meta":  true,
}

func isVoid(tag string) bool {
	return voidTags[tag]
}
