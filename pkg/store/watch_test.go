package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsSettingsChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Config{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	s := DefaultSettings()
	s.FacilityName = "North Annex"
	if err := p.SaveSettings(s); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventSettingsChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for settings change event")
		}
	}
}

func TestPersistenceWatchEmitsSessionChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Config{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveSession(Session{User: "warden"}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for got := false; !got; {
		select {
		case evt := <-ch:
			got = evt.Type == EventSessionChanged
		case <-deadline:
			t.Fatal("timed out waiting for session change event")
		}
	}

	cancel()
	for range ch {
	}
}
