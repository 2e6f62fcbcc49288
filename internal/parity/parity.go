// Package parity checks that the preview and the emitted HTML of a component
// carry the same content: text, links, images, form controls, icons and the
// number of repeated elements.
package parity

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/net/html"

	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/renderer"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Summary is the content of a piece of markup.
type Summary struct {
	Texts    []string       `json:"texts"`
	Links    []string       `json:"links"`
	Images   []string       `json:"images"`
	Controls []string       `json:"controls"`
	Icons    []string       `json:"icons"`
	Tags     map[string]int `json:"tags"`
}

// Inspect parses markup and summarizes its content. Preview chrome is
// skipped.
func Inspect(markupText string) (Summary, error) {
	doc, err := html.Parse(strings.NewReader(markupText))
	if err != nil {
		return Summary{}, fmt.Errorf("parsing markup: %w", err)
	}

	s := Summary{Tags: make(map[string]int)}
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				s.Texts = append(s.Texts, text)
			}
		case html.ElementNode:
			if _, ok := attr(n, markup.PreviewOnlyAttr); ok {
				return
			}
			s.Tags[n.Data]++
			switch n.Data {
			case "a":
				href, _ := attr(n, "href")
				s.Links = append(s.Links, href)
			case "img":
				src, _ := attr(n, "src")
				s.Images = append(s.Images, src)
			case "input":
				typ, _ := attr(n, "type")
				s.Controls = append(s.Controls, "input:"+typ)
			case "textarea", "select":
				s.Controls = append(s.Controls, n.Data)
			}
			if icon, ok := attr(n, "data-lucide"); ok {
				s.Icons = append(s.Icons, icon)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return s, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Report is the outcome of comparing one instance.
type Report struct {
	ID          string     `json:"id"`
	Kind        types.Kind `json:"kind"`
	Preview     Summary    `json:"preview"`
	Emitted     Summary    `json:"emitted"`
	Divergences []string   `json:"divergences,omitempty"`
}

// OK reports whether preview and emitter agree.
func (r Report) OK() bool {
	return len(r.Divergences) == 0
}

// Compare renders inst both ways and reports where the two disagree.
func Compare(ctx context.Context, inst types.ComponentInstance) (Report, error) {
	report := Report{ID: inst.ID, Kind: inst.Type}

	preview, err := renderer.PreviewHTML(ctx, inst)
	if err != nil {
		return report, err
	}
	if report.Preview, err = Inspect(preview); err != nil {
		return report, err
	}
	if report.Emitted, err = Inspect(renderer.EmitHTML(inst)); err != nil {
		return report, err
	}

	check := func(name string, a, b any) {
		if !reflect.DeepEqual(a, b) {
			report.Divergences = append(report.Divergences,
				fmt.Sprintf("%s: preview %v, emitted %v", name, a, b))
		}
	}
	check("texts", report.Preview.Texts, report.Emitted.Texts)
	check("links", report.Preview.Links, report.Emitted.Links)
	check("images", report.Preview.Images, report.Emitted.Images)
	check("controls", report.Preview.Controls, report.Emitted.Controls)
	check("icons", report.Preview.Icons, report.Emitted.Icons)
	check("tags", report.Preview.Tags, report.Emitted.Tags)

	return report, nil
}

// CompareAll compares every instance in order.
func CompareAll(ctx context.Context, components []types.ComponentInstance) ([]Report, error) {
	reports := make([]Report, 0, len(components))
	for _, inst := range components {
		r, err := Compare(ctx, inst)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
