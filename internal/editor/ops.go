package editor

import (
	"github.com/spf13/cast"

	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/types"
)

// OpName names an editing primitive.
type OpName string

const (
	OpSet         OpName = "set"
	OpArrayAdd    OpName = "arrayAdd"
	OpArrayRemove OpName = "arrayRemove"
	OpArrayUpdate OpName = "arrayUpdate"
	// OpToggle checks or unchecks Value in a checklist field.
	OpToggle OpName = "toggle"
)

// Op is a serialized editing primitive, as sent by the HTTP API and the CLI.
type Op struct {
	Op    OpName `json:"op" yaml:"op"`
	Key   string `json:"key" yaml:"key"`
	Index any    `json:"index,omitempty" yaml:"index,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	// Checked is read by OpToggle only.
	Checked bool `json:"checked,omitempty" yaml:"checked,omitempty"`
}

// Apply runs op against p. Only a malformed op is an error; an out-of-range
// index is not.
func Apply(p types.Props, op Op) error {
	if err := check(op); err != nil {
		return err
	}

	switch op.Op {
	case OpSet:
		Set(p, op.Key, op.Value)
	case OpArrayAdd:
		ArrayAdd(p, op.Key, op.Value)
	case OpArrayRemove:
		ArrayRemove(p, op.Key, cast.ToInt(op.Index))
	case OpArrayUpdate:
		ArrayUpdate(p, op.Key, cast.ToInt(op.Index), op.Value)
	case OpToggle:
		Toggle(p, op.Key, cast.ToString(op.Value), op.Checked)
	}
	return nil
}

// Updater is the part of the canvas store the editor needs.
type Updater interface {
	Update(id string, fn func(types.Props)) bool
}

// Editor binds the primitives to instances held by a store. Every method
// reports whether the instance exists; a missing id is a no-op.
type Editor struct {
	store Updater
}

// New creates an Editor over store.
func New(store Updater) *Editor {
	return &Editor{store: store}
}

// Set replaces props[key] of the instance with id.
func (e *Editor) Set(id, key string, value any) bool {
	return e.store.Update(id, func(p types.Props) { Set(p, key, value) })
}

// ArrayAdd appends item to props[key] of the instance with id.
func (e *Editor) ArrayAdd(id, key string, item any) bool {
	return e.store.Update(id, func(p types.Props) { ArrayAdd(p, key, item) })
}

// ArrayRemove removes props[key][index] of the instance with id.
func (e *Editor) ArrayRemove(id, key string, index int) bool {
	return e.store.Update(id, func(p types.Props) { ArrayRemove(p, key, index) })
}

// ArrayUpdate replaces props[key][index] of the instance with id.
func (e *Editor) ArrayUpdate(id, key string, index int, value any) bool {
	return e.store.Update(id, func(p types.Props) { ArrayUpdate(p, key, index, value) })
}

// Apply runs ops in order against the instance with id. Ops are checked
// before any is applied, so a malformed batch changes nothing.
func (e *Editor) Apply(id string, ops ...Op) (bool, error) {
	for _, op := range ops {
		if err := check(op); err != nil {
			return false, err
		}
	}

	var err error
	found := e.store.Update(id, func(p types.Props) {
		for _, op := range ops {
			if err = Apply(p, op); err != nil {
				return
			}
		}
	})
	return found, err
}

func check(op Op) error {
	switch op.Op {
	case OpSet, OpArrayAdd, OpArrayRemove, OpArrayUpdate, OpToggle:
	default:
		return errors.Validation(errors.CodeUnknownOp, "unknown op: "+string(op.Op))
	}
	if op.Key == "" {
		return errors.Validation(errors.CodeInvalidRequest, "op requires a key")
	}
	if op.Op == OpArrayRemove || op.Op == OpArrayUpdate {
		if _, err := cast.ToIntE(op.Index); err != nil || op.Index == nil {
			return errors.Validation(errors.CodeInvalidRequest, "op requires an integer index").
				WithContext("op", string(op.Op))
		}
	}
	if op.Op == OpToggle {
		if v, err := cast.ToStringE(op.Value); err != nil || v == "" {
			return errors.Validation(errors.CodeInvalidRequest, "toggle requires a value")
		}
	}
	return nil
}
