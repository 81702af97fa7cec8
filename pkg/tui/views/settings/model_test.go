package settings

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/warden/pkg/store"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
)

type fakeBackend struct {
	current store.Settings
	saved   []store.Settings
	saveErr error
	resets  int
}

func (b *fakeBackend) Settings() (store.Settings, error) { return b.current, nil }

func (b *fakeBackend) SaveSettings(s store.Settings) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	b.saved = append(b.saved, s)
	b.current = s
	return nil
}

func (b *fakeBackend) ResetSettings() (store.Settings, error) {
	b.resets++
	b.current = store.DefaultSettings()
	return b.current, nil
}

func newPanel(b *fakeBackend) *Model {
	m := New(b, theme.Default())
	m.SetSize(100, 40)
	m.Enter()
	return m
}

func TestEnterShowsSavedSettings(t *testing.T) {
	s := store.DefaultSettings()
	s.FacilityName = "North Wing"
	m := newPanel(&fakeBackend{current: s})
	if !strings.Contains(m.View(), "North Wing") {
		t.Fatalf("settings not shown:\n%s", m.View())
	}
	if m.Capturing() {
		t.Fatal("the panel starts read-only")
	}
}

func TestEditAndSave(t *testing.T) {
	b := &fakeBackend{current: store.DefaultSettings()}
	m := newPanel(b)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if !m.Capturing() {
		t.Fatal("e should start editing")
	}

	_, cmd := m.Update(events.FormSubmitMsg{Component: ID, Values: map[string]string{"facilityName": "North Wing", "smsAlerts": "true"}})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	m.Update(cmd())
	if m.Capturing() {
		t.Fatal("a successful save ends editing")
	}
	if len(b.saved) != 1 || b.saved[0].FacilityName != "North Wing" || !b.saved[0].SMSAlerts {
		t.Fatalf("saved %+v", b.saved)
	}
	if m.Current().FacilityName != "North Wing" {
		t.Fatalf("current = %q", m.Current().FacilityName)
	}
}

func TestSaveFailureKeepsEditing(t *testing.T) {
	b := &fakeBackend{current: store.DefaultSettings(), saveErr: errors.New("store: maxCapacity must be a positive number")}
	m := newPanel(b)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	_, cmd := m.Update(events.FormSubmitMsg{Component: ID, Values: map[string]string{"maxCapacity": "0"}})
	m.Update(cmd())
	if !m.Capturing() {
		t.Fatal("a failed save keeps the form open")
	}
	if !strings.Contains(m.View(), "maxCapacity must be a positive number") {
		t.Fatalf("error missing:\n%s", m.View())
	}
	if m.Current().MaxCapacity != "1500" {
		t.Fatalf("current changed to %q", m.Current().MaxCapacity)
	}
}

func TestCancelAndReset(t *testing.T) {
	s := store.DefaultSettings()
	s.FacilityName = "North Wing"
	b := &fakeBackend{current: s}
	m := newPanel(b)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m.Update(events.FormCancelMsg{Component: ID})
	if m.Capturing() {
		t.Fatal("cancel ends editing")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	m.Update(cmd())
	if b.resets != 1 || m.Current().FacilityName != store.DefaultSettings().FacilityName {
		t.Fatalf("reset not applied: %+v", m.Current())
	}
}

func TestLocalChangeReloads(t *testing.T) {
	b := &fakeBackend{current: store.DefaultSettings()}
	m := newPanel(b)
	b.current.FacilityName = "Changed Elsewhere"
	m.Update(events.LocalChangeMsg{Event: store.Event{Type: store.EventSettingsChanged}})
	if m.Current().FacilityName != "Changed Elsewhere" {
		t.Fatalf("current = %q", m.Current().FacilityName)
	}
}
