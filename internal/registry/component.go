// Package registry is the component type registry: the closed catalog of block
// kinds, each with its default props and the markup tree it renders to.
//
// The tree built by a Registration is the single description consumed by both
// the live preview and the HTML emitter.
package registry

import (
	"sync"

	"github.com/conneroisu/blockcraft/internal/markup"
	"github.com/conneroisu/blockcraft/internal/types"
)

// Registration describes one component kind.
type Registration struct {
	Kind        types.Kind
	Label       string
	Description string
	Icon        string
	// Defaults returns a fresh canonical Props; every call yields an equal value.
	Defaults func() types.Props
	// Build describes the props as a markup tree. Missing arrays render empty.
	Build func(types.Props) *markup.Node
}

// CatalogEntry is the serializable view of a Registration.
type CatalogEntry struct {
	Kind        types.Kind  `json:"type" yaml:"type"`
	Label       string      `json:"label" yaml:"label"`
	Description string      `json:"description" yaml:"description"`
	Icon        string      `json:"icon" yaml:"icon"`
	Keys        []string    `json:"keys" yaml:"keys"`
	Defaults    types.Props `json:"defaults" yaml:"-"`
}

var (
	mu            sync.RWMutex
	registrations = make(map[types.Kind]Registration)
)

// Register adds a kind to the catalog, replacing any previous registration.
func Register(reg Registration) {
	mu.Lock()
	defer mu.Unlock()
	registrations[reg.Kind] = reg
}

// Lookup retrieves the registration for kind.
func Lookup(kind types.Kind) (Registration, bool) {
	mu.RLock()
	defer mu.RUnlock()
	reg, ok := registrations[kind]
	return reg, ok
}

// All returns the registrations in catalog order.
func All() []Registration {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Registration, 0, len(registrations))
	for _, kind := range types.Kinds {
		if reg, ok := registrations[kind]; ok {
			out = append(out, reg)
		}
	}
	return out
}

// Count returns the number of registered kinds.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(registrations)
}

// DefaultProps returns the canonical props for kind. Unrecognized kinds get an
// empty bag.
func DefaultProps(kind types.Kind) types.Props {
	if reg, ok := Lookup(kind); ok && reg.Defaults != nil {
		return reg.Defaults()
	}
	return NewBag(kind)
}

// Catalog returns the catalog entries in catalog order.
func Catalog() []CatalogEntry {
	regs := All()
	out := make([]CatalogEntry, 0, len(regs))
	for _, reg := range regs {
		defaults := DefaultProps(reg.Kind)
		out = append(out, CatalogEntry{
			Kind:        reg.Kind,
			Label:       reg.Label,
			Description: reg.Description,
			Icon:        reg.Icon,
			Keys:        defaults.Keys(),
			Defaults:    defaults,
		})
	}
	return out
}

// Unknown is the placeholder tree shown for unrecognized kinds.
func Unknown(kind types.Kind) *markup.Node {
	return markup.El("div", "p-8 bg-gray-100 border-2 border-dashed border-gray-300",
		markup.TextEl("p", "text-gray-500", "Unknown component type: "+string(kind)),
	)
}

// Build returns the markup tree of an instance, falling back to the unknown
// placeholder for unrecognized kinds.
func Build(inst types.ComponentInstance) *markup.Node {
	reg, ok := Lookup(inst.Type)
	if !ok || reg.Build == nil {
		return Unknown(inst.Type)
	}
	return reg.Build(inst.Props)
}
