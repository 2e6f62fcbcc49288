// Package types provides the document model shared by the canvas store, the
// component registry, the code generators and the server. It lives in its own
// package so those packages can depend on it without depending on each other.
package types

import (
	"encoding/json"
	"time"
)

// Kind is the type tag of a component instance. The recognized kinds form a
// closed set; any other string is carried as-is and rendered as a placeholder.
type Kind string

const (
	KindNavbar      Kind = "navbar"
	KindHero        Kind = "hero"
	KindLayout      Kind = "layout"
	KindFeatures    Kind = "features"
	KindPricing     Kind = "pricing"
	KindForm        Kind = "form"
	KindTestimonial Kind = "testimonial"
	KindCTA         Kind = "cta"
	KindTeam        Kind = "team"
	KindFooter      Kind = "footer"
)

// Kinds lists the recognized kinds in catalog order.
var Kinds = []Kind{
	KindNavbar,
	KindHero,
	KindLayout,
	KindFeatures,
	KindPricing,
	KindForm,
	KindTestimonial,
	KindCTA,
	KindTeam,
	KindFooter,
}

// Known reports whether k is one of the recognized kinds.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Props is the type-specific attribute bag of a component instance.
//
// Recognized kinds back it with a typed variant; the generic accessors let the
// property editor stay type-agnostic. Keys outside a variant's schema are kept
// verbatim so a shallow merge of arbitrary keys is never lossy.
type Props interface {
	// Kind returns the kind this bag belongs to.
	Kind() Kind
	// Keys returns the schema keys in declaration order followed by any extra
	// keys in lexical order.
	Keys() []string
	// Get returns the current value for key.
	Get(key string) (any, bool)
	// Set replaces the value for key. Values that cannot be coerced to the
	// field's type leave the field unchanged.
	Set(key string, value any)
	// Clone returns a deep copy.
	Clone() Props
	json.Marshaler
}

// Position is the legacy canvas coordinate of an instance. Y is assigned once
// at creation and never recomputed; renderers must not read it.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ComponentInstance is one placed block on the canvas.
type ComponentInstance struct {
	ID       string   `json:"id"`
	Type     Kind     `json:"type"`
	Props    Props    `json:"props"`
	Position Position `json:"position"`
}

// Clone returns a deep copy of the instance.
func (c ComponentInstance) Clone() ComponentInstance {
	out := c
	if c.Props != nil {
		out.Props = c.Props.Clone()
	}
	return out
}

// Project owns every component and the backend schema of one editing session.
type Project struct {
	Name       string              `json:"name"`
	Components []ComponentInstance `json:"components"`
	Backend    BackendSchema       `json:"backend"`
}

// Clone returns a deep copy suitable for handing to an emitter.
func (p Project) Clone() Project {
	out := Project{Name: p.Name, Backend: p.Backend.Clone()}
	out.Components = CloneComponents(p.Components)
	return out
}

// CloneComponents deep-copies a component sequence preserving order.
func CloneComponents(in []ComponentInstance) []ComponentInstance {
	out := make([]ComponentInstance, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// EventType represents the type of canvas change event.
type EventType string

const (
	EventTypeAdded    EventType = "added"
	EventTypeUpdated  EventType = "updated"
	EventTypeRemoved  EventType = "removed"
	EventTypeSelected EventType = "selected"
)

// ComponentEvent represents a change on the canvas, used for live preview
// notifications.
type ComponentEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id,omitempty"`
	Kind      Kind      `json:"kind,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
