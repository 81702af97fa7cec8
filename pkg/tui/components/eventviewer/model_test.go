package eventviewer

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/tui/events"
)

func TestNoteDescribesMessages(t *testing.T) {
	m := NewModel(10)
	m.Note(events.StoreChangeMsg{ChangeMsg: entitystore.ChangeMsg{Kind: "cells", Action: entitystore.ChangeDelete, ID: "3"}})
	m.Note(events.NotificationMsg{Notification: notify.Errorf("Failed to add cell")})
	m.Note(events.DoneMsg{Component: "staff", Op: "add", Err: errors.New("boom")})
	m.Note(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	entries := m.Entries()
	if len(entries) != 4 {
		t.Fatalf("got %d entries", len(entries))
	}
	// newest first
	if entries[0].Detail != `key="q"` || entries[0].Source != "tea" {
		t.Fatalf("unexpected key entry %+v", entries[0])
	}
	if entries[1].Source != "staff" || entries[1].Level != LevelWarn {
		t.Fatalf("unexpected done entry %+v", entries[1])
	}
	if entries[2].Source != "notify" || entries[2].Level != LevelError {
		t.Fatalf("unexpected notification entry %+v", entries[2])
	}
	if entries[3].Source != "cells" || !strings.Contains(entries[3].Detail, `action:"delete"`) {
		t.Fatalf("unexpected change entry %+v", entries[3])
	}
}

func TestAppendCapsEntries(t *testing.T) {
	m := NewModel(3)
	for i := 0; i < 5; i++ {
		m.Append(Entry{Summary: "tick"})
	}
	if got := len(m.Entries()); got != 3 {
		t.Fatalf("got %d entries, want 3", got)
	}
	m.Clear()
	if got := len(m.Entries()); got != 0 {
		t.Fatalf("got %d entries after Clear", got)
	}
}

func TestViewShowsCount(t *testing.T) {
	m := NewModel(10)
	if m.View() != "" {
		t.Fatal("unsized viewer should render nothing")
	}
	m.SetSize(80, 8)
	m.Append(Entry{Source: "ui", Summary: "debug", Detail: "Debug window enabled"})
	view := m.View()
	if !strings.Contains(view, "Events (1)") || !strings.Contains(view, "debug: Debug window enabled") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}
