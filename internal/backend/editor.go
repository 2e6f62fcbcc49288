// Package backend implements the backend schema editor: list editing over
// endpoints and data models plus the singleton auth block.
//
// It uses the same permissive semantics as the canvas: updates and deletes
// against a missing id are no-ops, and values are never validated.
package backend

import (
	"context"
	"reflect"
	"slices"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"

	"github.com/conneroisu/blockcraft/internal/editor"
	"github.com/conneroisu/blockcraft/internal/logging"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Editor edits one backend schema.
type Editor struct {
	schema types.BackendSchema
	newID  func() string
	logger logging.Logger
	mutex  sync.RWMutex
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDGenerator replaces the uuid id source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// WithLogger sets the logger used to record auth changes.
func WithLogger(l logging.Logger) Option {
	return func(e *Editor) { e.logger = l.WithComponent("backend") }
}

// NewEditor creates an editor over an empty schema with auth disabled.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		schema: types.BackendSchema{
			Endpoints: []types.Endpoint{},
			Models:    []types.DataModel{},
			Auth:      types.AuthConfig{Enabled: false, Methods: []string{}},
		},
		newID:  uuid.NewString,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns a deep copy of the schema.
func (e *Editor) Snapshot() types.BackendSchema {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.schema.Clone()
}

// Load replaces the schema.
func (e *Editor) Load(schema types.BackendSchema) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.schema = schema.Clone()
	e.schema.Auth.Methods = dedupe(e.schema.Auth.Methods)
}

// AddEndpoint appends a new endpoint with placeholder values.
func (e *Editor) AddEndpoint() types.Endpoint {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	ep := types.Endpoint{
		ID:          e.newID(),
		Path:        "/api/new-endpoint",
		Method:      types.MethodGet,
		Description: "New endpoint description",
		Parameters:  []any{},
		Response:    types.Response{Type: "object", Properties: map[string]any{}},
	}
	e.schema.Endpoints = editor.Append(e.schema.Endpoints, ep)
	return ep.Clone()
}

// UpdateEndpoint shallow-merges partial into the endpoint with id.
func (e *Editor) UpdateEndpoint(id string, partial map[string]any) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	i := slices.IndexFunc(e.schema.Endpoints, func(ep types.Endpoint) bool { return ep.ID == id })
	if i < 0 {
		return false
	}
	ep := e.schema.Endpoints[i].Clone()
	merge(&ep, partial)
	ep.ID = id
	e.schema.Endpoints = editor.ReplaceAt(e.schema.Endpoints, i, ep)
	return true
}

// DeleteEndpoint removes the endpoint with id.
func (e *Editor) DeleteEndpoint(id string) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	i := slices.IndexFunc(e.schema.Endpoints, func(ep types.Endpoint) bool { return ep.ID == id })
	if i < 0 {
		return false
	}
	e.schema.Endpoints = editor.RemoveAt(e.schema.Endpoints, i)
	return true
}

// AddModel appends a new model with an id primary key and a creation
// timestamp.
func (e *Editor) AddModel() types.DataModel {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	m := types.DataModel{
		ID:   e.newID(),
		Name: "NewModel",
		Fields: []types.Field{
			{Name: "id", Type: types.FieldInteger, Required: true, Primary: true},
			{Name: "created_at", Type: types.FieldTimestamp, Required: true},
		},
	}
	e.schema.Models = editor.Append(e.schema.Models, m)
	return m.Clone()
}

// UpdateModel shallow-merges partial into the model with id.
func (e *Editor) UpdateModel(id string, partial map[string]any) bool {
	return e.withModel(id, func(m *types.DataModel) {
		merge(m, partial)
		m.ID = id
	})
}

// DeleteModel removes the model with id.
func (e *Editor) DeleteModel(id string) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	i := e.modelIndex(id)
	if i < 0 {
		return false
	}
	e.schema.Models = editor.RemoveAt(e.schema.Models, i)
	return true
}

// AddField appends f to the model with id.
func (e *Editor) AddField(modelID string, f types.Field) bool {
	return e.withModel(modelID, func(m *types.DataModel) {
		m.Fields = editor.Append(m.Fields, f)
	})
}

// UpdateField replaces the field at index; out of range is a no-op.
func (e *Editor) UpdateField(modelID string, index int, f types.Field) bool {
	return e.withModel(modelID, func(m *types.DataModel) {
		m.Fields = editor.ReplaceAt(m.Fields, index, f)
	})
}

// RemoveField removes the field at index; out of range is a no-op.
func (e *Editor) RemoveField(modelID string, index int) bool {
	return e.withModel(modelID, func(m *types.DataModel) {
		m.Fields = editor.RemoveAt(m.Fields, index)
	})
}

// UpdateAuth shallow-merges partial into the auth block. Methods stay a set.
func (e *Editor) UpdateAuth(partial map[string]any) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	auth := e.schema.Auth.Clone()
	merge(&auth, partial)
	auth.Methods = dedupe(auth.Methods)
	e.schema.Auth = auth

	e.logger.Info(context.Background(), "auth updated", logging.SanitizeFields(partial)...)
}

// SetAuthMethod adds method when checked and removes it otherwise. Repeated
// toggles never duplicate or reorder a method.
func (e *Editor) SetAuthMethod(method string, checked bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.schema.Auth.HasMethod(method) == checked {
		return
	}
	if checked {
		e.schema.Auth.Methods = append(slices.Clone(e.schema.Auth.Methods), method)
		return
	}
	e.schema.Auth.Methods = slices.DeleteFunc(slices.Clone(e.schema.Auth.Methods), func(m string) bool { return m == method })
}

func (e *Editor) modelIndex(id string) int {
	return slices.IndexFunc(e.schema.Models, func(m types.DataModel) bool { return m.ID == id })
}

func (e *Editor) withModel(id string, fn func(*types.DataModel)) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	i := e.modelIndex(id)
	if i < 0 {
		return false
	}
	m := e.schema.Models[i].Clone()
	fn(&m)
	e.schema.Models = editor.ReplaceAt(e.schema.Models, i, m)
	return true
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// merge replaces each top-level field of dst named in partial. Every named
// field is decoded into a fresh value, so nested lists and objects are
// replaced rather than merged. Values that cannot be decoded are skipped.
func merge(dst any, partial map[string]any) {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("mapstructure")
		value, ok := partial[tag]
		if tag == "" || !ok {
			continue
		}

		fresh := reflect.New(rt.Field(i).Type)
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           fresh.Interface(),
			WeaklyTypedInput: true,
		})
		if err != nil {
			continue
		}
		if err := dec.Decode(value); err != nil {
			continue
		}
		rv.Field(i).Set(fresh.Elem())
	}
}
