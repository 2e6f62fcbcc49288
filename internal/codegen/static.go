// Package codegen holds the code generation engine: pure emitters turning a
// project snapshot into exportable text.
//
// Both targets are deterministic. The same project and components always
// produce byte-identical output.
package codegen

import (
	"strings"

	"github.com/conneroisu/blockcraft/internal/renderer"
	"github.com/conneroisu/blockcraft/internal/types"
)

const documentHeader = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/lucide@latest/dist/umd/lucide.js"></script>
</head>
<body>
`

const documentFooter = `
</body>
</html>`

// StaticDocument emits one self-contained HTML document with every component
// fragment in store order. The project name and all prop text are
// interpolated verbatim.
func StaticDocument(project types.Project, components []types.ComponentInstance) string {
	var b strings.Builder
	b.WriteString(strings.Replace(documentHeader, "{{title}}", project.Name, 1))
	for _, inst := range components {
		b.WriteString(renderer.EmitHTML(inst))
	}
	b.WriteString(documentFooter)
	return b.String()
}
