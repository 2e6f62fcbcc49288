// Package canvas holds the canvas document store: the ordered list of placed
// component instances plus the current selection.
//
// Every mutation runs under the store lock and completes before the next read
// observes the document. Readers get deep copies, so a snapshot handed to an
// emitter never changes underneath it.
package canvas

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conneroisu/blockcraft/internal/registry"
	"github.com/conneroisu/blockcraft/internal/types"
)

// RowHeight is the vertical spacing used for the legacy position.y field.
const RowHeight = 100

// Store manages the component instances of one editing session.
type Store struct {
	components []types.ComponentInstance
	selected   string
	newID      func() string
	mutex      sync.RWMutex
	watchers   []chan types.ComponentEvent
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		newID:    uuid.NewString,
		watchers: make([]chan types.ComponentEvent, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new instance of kind with its default props and returns a
// copy of it. Unrecognized kinds are accepted and carry an empty bag.
func (s *Store) Add(kind types.Kind) types.ComponentInstance {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	inst := types.ComponentInstance{
		ID:       s.newID(),
		Type:     kind,
		Props:    registry.DefaultProps(kind),
		Position: types.Position{X: 0, Y: len(s.components) * RowHeight},
	}
	s.components = append(s.components, inst)
	s.notify(types.EventTypeAdded, inst.ID, kind)

	return inst.Clone()
}

// Patch shallow-merges partial into the props of the instance with id. It
// reports whether the instance exists; a missing id is a no-op.
func (s *Store) Patch(id string, partial map[string]any) bool {
	return s.Update(id, func(p types.Props) {
		for k, v := range partial {
			p.Set(k, v)
		}
	})
}

// Update runs fn against the live props of the instance with id.
func (s *Store) Update(id string, fn func(types.Props)) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	inst := &s.components[i]
	if inst.Props == nil {
		inst.Props = registry.NewBag(inst.Type)
	}
	fn(inst.Props)
	s.notify(types.EventTypeUpdated, id, inst.Type)
	return true
}

// Remove deletes the instance with id, clearing the selection if it pointed
// at it. A missing id is a no-op.
func (s *Store) Remove(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	kind := s.components[i].Type
	s.components = append(s.components[:i:i], s.components[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	s.notify(types.EventTypeRemoved, id, kind)
	return true
}

// Get returns a copy of the instance with id.
func (s *Store) Get(id string) (types.ComponentInstance, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.ComponentInstance{}, false
	}
	return s.components[i].Clone(), true
}

// Components returns a deep copy of the instances in store order.
func (s *Store) Components() []types.ComponentInstance {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return types.CloneComponents(s.components)
}

// Len returns the number of instances.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.components)
}

// Reset removes every instance and clears the selection.
func (s *Store) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, inst := range s.components {
		s.notify(types.EventTypeRemoved, inst.ID, inst.Type)
	}
	s.components = nil
	s.selected = ""
}

// Select marks the instance with id as selected. Selecting an unknown id
// leaves the selection unchanged.
func (s *Store) Select(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.selected = id
	s.notify(types.EventTypeSelected, id, s.components[i].Type)
	return true
}

// Selected returns a copy of the selected instance, if any.
func (s *Store) Selected() (types.ComponentInstance, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.selected == "" {
		return types.ComponentInstance{}, false
	}
	i := s.indexOf(s.selected)
	if i < 0 {
		return types.ComponentInstance{}, false
	}
	return s.components[i].Clone(), true
}

// SelectedID returns the id of the selected instance or "".
func (s *Store) SelectedID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.selected
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.selected == "" {
		return
	}
	s.selected = ""
	s.notify(types.EventTypeSelected, "", "")
}

// Watch returns a channel that receives canvas events.
func (s *Store) Watch() <-chan types.ComponentEvent {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ch := make(chan types.ComponentEvent, 100)
	s.watchers = append(s.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it.
func (s *Store) UnWatch(ch <-chan types.ComponentEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, watcher := range s.watchers {
		if watcher == ch {
			close(watcher)
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			break
		}
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.components {
		if s.components[i].ID == id {
			return i
		}
	}
	return -1
}

// notify must be called with the lock held.
func (s *Store) notify(eventType types.EventType, id string, kind types.Kind) {
	event := types.ComponentEvent{
		Type:      eventType,
		ID:        id,
		Kind:      kind,
		Timestamp: time.Now(),
	}
	for _, watcher := range s.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
