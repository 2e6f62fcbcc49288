package registry

import (
	"encoding/json"
	"sort"

	"github.com/conneroisu/blockcraft/internal/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// field binds one prop key to a typed struct field.
type field[T any] struct {
	key string
	get func(*T) any
	set func(*T, any) bool
}

// variant is the typed Props implementation shared by every recognized kind.
type variant[T any] struct {
	kind   types.Kind
	value  T
	fields []field[T]
	clone  func(T) T
	extra  map[string]any
}

func newVariant[T any](kind types.Kind, value T, fields []field[T], clone func(T) T) *variant[T] {
	return &variant[T]{kind: kind, value: value, fields: fields, clone: clone}
}

// NewBag returns an empty, schema-less Props for kind. Every key set on it is
// kept verbatim.
func NewBag(kind types.Kind) types.Props {
	return newVariant(kind, struct{}{}, nil, func(v struct{}) struct{} { return v })
}

func (v *variant[T]) Kind() types.Kind { return v.kind }

func (v *variant[T]) Keys() []string {
	keys := make([]string, 0, len(v.fields)+len(v.extra))
	for _, f := range v.fields {
		keys = append(keys, f.key)
	}
	extra := make([]string, 0, len(v.extra))
	for k := range v.extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func (v *variant[T]) Get(key string) (any, bool) {
	for _, f := range v.fields {
		if f.key == key {
			return f.get(&v.value), true
		}
	}
	val, ok := v.extra[key]
	return val, ok
}

func (v *variant[T]) Set(key string, value any) {
	for _, f := range v.fields {
		if f.key == key {
			f.set(&v.value, value)
			return
		}
	}
	if v.extra == nil {
		v.extra = make(map[string]any)
	}
	v.extra[key] = value
}

func (v *variant[T]) Clone() types.Props {
	out := &variant[T]{
		kind:   v.kind,
		value:  v.clone(v.value),
		fields: v.fields,
		clone:  v.clone,
	}
	if v.extra != nil {
		out.extra = make(map[string]any, len(v.extra))
		for k, val := range v.extra {
			out.extra[k] = deepCopy(val)
		}
	}
	return out
}

func (v *variant[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.fields)+len(v.extra))
	for _, k := range v.Keys() {
		out[k], _ = v.Get(k)
	}
	return json.Marshal(out)
}

// valueOf extracts the typed value of p. Props that are not backed by the
// matching variant are read key by key; absent keys stay at their zero value.
func valueOf[T any](p types.Props, fields []field[T]) T {
	if v, ok := p.(*variant[T]); ok {
		return v.value
	}
	var out T
	if p == nil {
		return out
	}
	for _, f := range fields {
		if val, ok := p.Get(f.key); ok {
			f.set(&out, val)
		}
	}
	return out
}

func stringField[T any](key string, ptr func(*T) *string) field[T] {
	return field[T]{
		key: key,
		get: func(t *T) any { return *ptr(t) },
		set: func(t *T, v any) bool {
			s, err := cast.ToStringE(v)
			if err != nil {
				return false
			}
			*ptr(t) = s
			return true
		},
	}
}

func intField[T any](key string, ptr func(*T) *int) field[T] {
	return field[T]{
		key: key,
		get: func(t *T) any { return *ptr(t) },
		set: func(t *T, v any) bool {
			n, err := cast.ToIntE(v)
			if err != nil {
				return false
			}
			*ptr(t) = n
			return true
		},
	}
}

func stringsField[T any](key string, ptr func(*T) *[]string) field[T] {
	return field[T]{
		key: key,
		get: func(t *T) any { return append([]string(nil), *ptr(t)...) },
		set: func(t *T, v any) bool {
			if v == nil {
				*ptr(t) = nil
				return true
			}
			if str, ok := v.(string); ok {
				v = []string{str}
			}
			s, err := cast.ToStringSliceE(v)
			if err != nil {
				return false
			}
			*ptr(t) = s
			return true
		},
	}
}

func listField[T, E any](key string, ptr func(*T) *[]E) field[T] {
	return field[T]{
		key: key,
		get: func(t *T) any { return append([]E(nil), *ptr(t)...) },
		set: func(t *T, v any) bool {
			if v == nil {
				*ptr(t) = nil
				return true
			}
			if typed, ok := v.([]E); ok {
				*ptr(t) = append([]E(nil), typed...)
				return true
			}
			var out []E
			if err := decode(v, &out); err != nil {
				return false
			}
			*ptr(t) = out
			return true
		},
	}
}

// decode converts loosely typed input (JSON maps, other structs) into out.
func decode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
