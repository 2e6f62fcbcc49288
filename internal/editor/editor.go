// Package editor implements the type-agnostic property editing protocol. All
// per-kind form fields funnel through four primitives: Set, ArrayAdd,
// ArrayRemove and ArrayUpdate.
//
// Nothing here validates values. Out-of-range indexes leave the array as it
// was.
package editor

import (
	"reflect"

	"github.com/conneroisu/blockcraft/internal/types"
)

// Set replaces props[key].
func Set(p types.Props, key string, value any) {
	p.Set(key, value)
}

// ArrayAdd appends item to the array at props[key], starting from an empty
// array when the key is absent or not an array.
func ArrayAdd(p types.Props, key string, item any) {
	current, _ := p.Get(key)
	p.Set(key, appendValue(current, item))
}

// ArrayRemove removes the element at index.
func ArrayRemove(p types.Props, key string, index int) {
	current, ok := p.Get(key)
	if !ok {
		return
	}
	if next, changed := removeValue(current, index); changed {
		p.Set(key, next)
	}
}

// ArrayUpdate replaces the element at index with value.
func ArrayUpdate(p types.Props, key string, index int, value any) {
	current, ok := p.Get(key)
	if !ok {
		return
	}
	if next, changed := replaceValue(current, index, value); changed {
		p.Set(key, next)
	}
}

// Append returns a copy of s with v appended.
func Append[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s...)
	return append(out, v)
}

// RemoveAt returns a copy of s without the element at i.
func RemoveAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s))
	out = append(out, s...)
	if i < 0 || i >= len(s) {
		return out
	}
	return append(out[:i], out[i+1:]...)
}

// ReplaceAt returns a copy of s with the element at i replaced by v.
func ReplaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	if i >= 0 && i < len(s) {
		out[i] = v
	}
	return out
}

func sliceOf(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	return rv, true
}

// fits reports whether item can be stored in a slice of rv's type.
func fits(rv reflect.Value, item any) bool {
	if item == nil {
		return false
	}
	return reflect.TypeOf(item).AssignableTo(rv.Type().Elem())
}

func generic(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func appendValue(current, item any) any {
	rv, ok := sliceOf(current)
	if !ok {
		return []any{item}
	}
	if rv.Kind() == reflect.Slice && fits(rv, item) {
		out := reflect.MakeSlice(rv.Type(), 0, rv.Len()+1)
		out = reflect.AppendSlice(out, rv)
		return reflect.Append(out, reflect.ValueOf(item)).Interface()
	}
	return Append(generic(rv), item)
}

func removeValue(current any, index int) (any, bool) {
	rv, ok := sliceOf(current)
	if !ok || index < 0 || index >= rv.Len() {
		return current, false
	}
	if rv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(rv.Type(), 0, rv.Len()-1)
		out = reflect.AppendSlice(out, rv.Slice(0, index))
		out = reflect.AppendSlice(out, rv.Slice(index+1, rv.Len()))
		return out.Interface(), true
	}
	return RemoveAt(generic(rv), index), true
}

func replaceValue(current any, index int, value any) (any, bool) {
	rv, ok := sliceOf(current)
	if !ok || index < 0 || index >= rv.Len() {
		return current, false
	}
	if rv.Kind() == reflect.Slice && fits(rv, value) {
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		out.Index(index).Set(reflect.ValueOf(value))
		return out.Interface(), true
	}
	return ReplaceAt(generic(rv), index, value), true
}
