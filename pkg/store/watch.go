package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a local store change notification.
type EventType int

const (
	// EventSettingsChanged indicates the saved settings were written or
	// removed, by this process or another one.
	EventSettingsChanged EventType = iota

	// EventSessionChanged indicates a login or logout.
	EventSessionChanged

	// EventInvalidated signals a change that could not be classified; callers
	// should re-read everything.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings"
	case EventSessionChanged:
		return "session"
	default:
		return "invalidated"
	}
}

// Event is emitted by Persistence.Watch when the local store changes.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than block the watcher. The
// channel is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer watcher.Close()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(EventInvalidated, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				switch filepath.Base(evt.Name) {
				case settingsKey:
					throttle.Enqueue(EventSettingsChanged, send)
				case sessionKey:
					throttle.Enqueue(EventSessionChanged, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of writes (a save touches the file several
// times) into one event per type.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(typ EventType, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[typ] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

// flush sends while holding the lock so that no send can follow Stop.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil

	for _, typ := range []EventType{EventSettingsChanged, EventSessionChanged, EventInvalidated} {
		if _, ok := pending[typ]; ok {
			send(Event{Type: typ})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
