package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestEventTypeFromOp(t *testing.T) {
	assert.Equal(t, EventTypeCreated, eventType(fsnotify.Create))
	assert.Equal(t, EventTypeModified, eventType(fsnotify.Write))
	assert.Equal(t, EventTypeDeleted, eventType(fsnotify.Remove))
	assert.Equal(t, EventTypeRenamed, eventType(fsnotify.Rename))
	assert.Equal(t, EventTypeModified, eventType(fsnotify.Chmod))
}

func TestFilters(t *testing.T) {
	assert.True(t, YAMLFilter(".blockcraft.yml"))
	assert.True(t, YAMLFilter("conf/app.yaml"))
	assert.False(t, YAMLFilter("main.go"))

	assert.True(t, NoHiddenSwapFilter(".blockcraft.yml"))
	assert.False(t, NoHiddenSwapFilter(".blockcraft.yml.swp"))
	assert.False(t, NoHiddenSwapFilter("config.yml~"))
	assert.False(t, NoHiddenSwapFilter(".#config.yml"))
}

func TestDebouncerCoalesces(t *testing.T) {
	d := &Debouncer{
		delay:  20 * time.Millisecond,
		events: make(chan ChangeEvent, 10),
		output: make(chan []ChangeEvent, 10),
	}

	d.addEvent(ChangeEvent{Type: EventTypeCreated, Path: "b.yml"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "a.yml"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "b.yml"})

	select {
	case events := <-d.output:
		require.Len(t, events, 2)
		assert.Equal(t, "a.yml", events[0].Path)
		assert.Equal(t, "b.yml", events[1].Path)
		assert.Equal(t, EventTypeModified, events[1].Type)
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not flush")
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".blockcraft.yml")
	require.NoError(t, os.WriteFile(path, []byte("project:\n  name: A\n"), 0o644))

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	var mu sync.Mutex
	var got []ChangeEvent
	done := make(chan struct{}, 1)
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		got = append(got, events...)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, fw.WatchFile(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("project:\n  name: B\n"), 0o644))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, e := range got {
		assert.Equal(t, filepath.Base(path), filepath.Base(e.Path))
	}
}
