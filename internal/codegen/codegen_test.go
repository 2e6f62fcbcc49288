package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/blockcraft/internal/canvas"
	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/types"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func project(name string) types.Project {
	return types.Project{Name: name}
}

func TestStaticDocumentOrder(t *testing.T) {
	store := canvas.NewStore()
	store.Add(types.KindNavbar)
	store.Add(types.KindHero)

	require.Equal(t, 2, store.Len())
	components := store.Components()
	assert.Equal(t, []types.Kind{types.KindNavbar, types.KindHero}, []types.Kind{components[0].Type, components[1].Type})
	assert.Equal(t, 0, components[0].Position.Y)
	assert.Equal(t, 100, components[1].Position.Y)

	doc := StaticDocument(project("My Website"), components)
	brand := strings.Index(doc, ">Brand<")
	title := strings.Index(doc, "Welcome to Our Website")
	require.NotEqual(t, -1, brand)
	require.NotEqual(t, -1, title)
	assert.Less(t, brand, title)
}

func TestStaticDocumentPatchedTitle(t *testing.T) {
	store := canvas.NewStore()
	hero := store.Add(types.KindHero)
	store.Patch(hero.ID, map[string]any{"title": "Launch"})

	doc := StaticDocument(project("My Website"), store.Components())
	assert.Equal(t, 1, strings.Count(doc, "Launch"))
	assert.NotContains(t, doc, "Welcome to Our Website")
}

func TestStaticDocumentBoilerplate(t *testing.T) {
	doc := StaticDocument(project("Acme"), nil)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>\n<html lang=\"en\">"))
	assert.Contains(t, doc, "<title>Acme</title>")
	assert.Contains(t, doc, `<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	assert.Contains(t, doc, `<script src="https://cdn.tailwindcss.com"></script>`)
	assert.Contains(t, doc, `<script src="https://unpkg.com/lucide@latest/dist/umd/lucide.js"></script>`)
	assert.True(t, strings.HasSuffix(doc, "\n</body>\n</html>"))
}

func TestStaticDocumentEmitsEveryKind(t *testing.T) {
	store := canvas.NewStore()
	for _, kind := range types.Kinds {
		store.Add(kind)
	}

	doc := StaticDocument(project("All"), store.Components())
	for _, want := range []string{
		"Choose Your Plan",
		"What Our Customers Say",
		"Ready to Build Something Amazing?",
		"Meet Our Amazing Team",
		"Building amazing experiences for the web.",
	} {
		assert.Contains(t, doc, want)
	}
	assert.NotContains(t, doc, "Layout Block: Drop components here")
}

func TestStaticDocumentUnknownKind(t *testing.T) {
	store := canvas.NewStore()
	store.Add("carousel")

	var doc string
	assert.NotPanics(t, func() {
		doc = StaticDocument(project("X"), store.Components())
	})
	assert.Contains(t, doc, "Unknown component type: carousel")
}

func TestStaticDocumentIsDeterministic(t *testing.T) {
	store := canvas.NewStore()
	for _, kind := range types.Kinds {
		store.Add(kind)
	}
	components := store.Components()

	first := StaticDocument(project("Same"), components)
	second := StaticDocument(project("Same"), components)
	assert.Equal(t, first, second)
}

func TestStaticDocumentIsLiteral(t *testing.T) {
	store := canvas.NewStore()
	cta := store.Add(types.KindCTA)
	store.Patch(cta.ID, map[string]any{"title": "<em>Now</em>"})

	doc := StaticDocument(project("<Site>"), store.Components())
	assert.Contains(t, doc, "<title><Site></title>")
	assert.Contains(t, doc, "<em>Now</em>")
}

func TestStaticDocumentSnapshot(t *testing.T) {
	store := canvas.NewStore()
	store.Add(types.KindCTA)
	store.Add(types.KindTestimonial)

	doc := StaticDocument(project("Snapshot Site"), store.Components())
	snaps.MatchSnapshot(t, doc)
}

func TestScaffold(t *testing.T) {
	p := project("My Cool Site!")

	react := Scaffold(p, KeyReact)
	assert.Contains(t, react, "<h1>My Cool Site!</h1>")
	assert.Contains(t, react, "This is a MERN Stack frontend generated by WebBuilder Pro.")

	express := Scaffold(p, KeyExpress)
	assert.Contains(t, express, "app.post('/api/contact'")
	assert.Contains(t, express, "console.log(`Server is running on http://localhost:${PORT}`);")
	assert.NotContains(t, express, "My Cool Site!")

	pkg := Scaffold(p, KeyPackage)
	assert.Contains(t, pkg, `"name": "my-cool-site!-mern"`)
	assert.Contains(t, pkg, `"dev": "concurrently \"npm run start\" \"npm start --prefix frontend\""`)

	assert.Equal(t, "", Scaffold(p, "dockerfile"))
}

func TestScaffoldIgnoresBackendSchema(t *testing.T) {
	plain := project("Shop")
	withBackend := project("Shop")
	withBackend.Backend.Endpoints = []types.Endpoint{{ID: "e1", Path: "/api/orders", Method: types.MethodPost}}

	assert.Equal(t, ScaffoldFiles(plain), ScaffoldFiles(withBackend))
}

func TestScaffoldSnapshot(t *testing.T) {
	for _, f := range ScaffoldFiles(project("Snapshot Site")) {
		t.Run(f.Key, func(t *testing.T) {
			snaps.MatchSnapshot(t, f.Content)
		})
	}
}

func TestScaffoldFilesOrder(t *testing.T) {
	files := ScaffoldFiles(project("X"))
	require.Len(t, files, 3)
	assert.Equal(t, []string{"App.jsx", "server.js", "package.json"},
		[]string{files[0].FileName, files[1].FileName, files[2].FileName})
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Cool Site!", "my-cool-site!"},
		{"My   Cool\tSite", "my-cool-site"},
		{"  padded  ", "padded"},
		{"", ""},
		{"already-slugged", "already-slugged"},
		{"Café Déjà Vu", "café-déjà-vu"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slug(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slug(got))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "index.html", FileName(TargetStatic, ""))
	assert.Equal(t, "App.jsx", FileName(TargetScaffold, KeyReact))
	assert.Equal(t, "server.js", FileName(TargetScaffold, KeyExpress))
	assert.Equal(t, "package.json", FileName(TargetScaffold, KeyPackage))
	assert.Equal(t, "", FileName(TargetScaffold, "dockerfile"))
	assert.Equal(t, "", FileName("zip", ""))
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store := canvas.NewStore()
	store.Add(types.KindHero)

	paths, err := Export(dir, project("Site"), store.Components(), TargetStatic)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "index.html")}, paths)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, StaticDocument(project("Site"), store.Components()), string(content))

	paths, err = Export(dir, project("Site"), nil, TargetScaffold)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}

func TestExportUnknownTarget(t *testing.T) {
	_, err := Export(t.TempDir(), project("Site"), nil, "zip")
	assert.True(t, errors.IsKind(err, errors.KindValidation))
}

func TestExportWriteFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Export(filepath.Join(file, "sub"), project("Site"), nil, TargetStatic)
	assert.True(t, errors.IsKind(err, errors.KindIO))
}
