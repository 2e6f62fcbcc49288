// Package renderer turns component instances into their two visible forms:
// the escaped live preview and the literal HTML fragment used by exports.
//
// Both forms are serializations of the same registry markup tree, so they
// cannot disagree on content.
package renderer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/registry"
	"github.com/conneroisu/blockcraft/internal/types"
)

// RenderPreview returns the preview projection of inst.
func RenderPreview(inst types.ComponentInstance) templ.Component {
	return markup.Component(registry.Build(inst))
}

// PreviewHTML renders the preview projection of inst to a string.
func PreviewHTML(ctx context.Context, inst types.ComponentInstance) (string, error) {
	var b strings.Builder
	if err := RenderPreview(inst).Render(ctx, &b); err != nil {
		return "", fmt.Errorf("rendering %s preview: %w", inst.Type, err)
	}
	return b.String(), nil
}

// EmitHTML returns the static HTML fragment for inst, indented one level
// below <body>.
func EmitHTML(inst types.ComponentInstance) string {
	return markup.Literal(registry.Build(inst), 1)
}

// RenderCanvas renders the canvas: every instance in store order wrapped in
// selection chrome, or the empty state when there are none.
func RenderCanvas(components []types.ComponentInstance, selectedID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(components) == 0 {
			return markup.Component(emptyCanvas()).Render(ctx, w)
		}

		if _, err := io.WriteString(w, `<div class="bg-white min-h-full">`); err != nil {
			return err
		}
		for _, inst := range components {
			if err := canvasItem(inst, inst.ID == selectedID).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func canvasItem(inst types.ComponentInstance, selected bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "relative hover:ring-2 hover:ring-blue-300 cursor-pointer"
		if selected {
			class = "relative ring-2 ring-blue-500 hover:ring-2 hover:ring-blue-300 cursor-pointer"
		}
		open := fmt.Sprintf(`<div class="%s" data-component-id="%s" data-component-type="%s">`,
			class, templ.EscapeString(inst.ID), templ.EscapeString(string(inst.Type)))
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		if err := RenderPreview(inst).Render(ctx, w); err != nil {
			return err
		}
		if selected {
			badge := markup.TextEl("div", "absolute top-2 right-2 bg-blue-500 text-white px-2 py-1 rounded text-xs", string(inst.Type))
			if err := markup.Component(badge).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func emptyCanvas() *markup.Node {
	return markup.El("div", "h-full flex items-center justify-center",
		markup.El("div", "text-center",
			markup.TextEl("h3", "text-lg font-medium text-gray-900 mb-2", "Start Building Your Website"),
			markup.TextEl("p", "text-gray-500 mb-4", "Add components from the sidebar to get started"),
			markup.TextEl("div", "text-sm text-gray-400", "Try adding a navbar or hero section first"),
		),
	)
}

// RenderPageWithLayout wraps rendered canvas HTML in the live preview page,
// including the websocket client that reloads on canvas changes.
func RenderPageWithLayout(title string, html string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s - Blockcraft Preview</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/lucide@latest/dist/umd/lucide.js"></script>
</head>
<body class="bg-gray-100">
    <div id="canvas" class="min-h-screen">
        %s
    </div>
    <script>
        lucide.createIcons();
        const scheme = window.location.protocol === 'https:' ? 'wss://' : 'ws://';
        const ws = new WebSocket(scheme + window.location.host + '/ws');
        ws.onmessage = function(event) {
            const message = JSON.parse(event.data);
            if (message.type === 'full_reload' || message.type === 'canvas_changed') {
                window.location.reload();
            }
        };
    </script>
</body>
</html>`, templ.EscapeString(title), html)
}
