package login

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/warden/pkg/store"
	"tableflip.dev/warden/pkg/tui/events"
	"tableflip.dev/warden/pkg/tui/theme"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestEmptyCredentialsAreRefused(t *testing.T) {
	called := false
	m := New(func(string, string) (store.Session, error) {
		called = true
		return store.Session{}, nil
	}, "North Wing", theme.Default())

	// enter on the user field moves to the password.
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || called {
		t.Fatal("empty credentials should not reach the login func")
	}
	if m.Err() != "Please enter both username and password" {
		t.Fatalf("err = %q", m.Err())
	}
	if !strings.Contains(m.View(), "North Wing") {
		t.Fatalf("facility name missing:\n%s", m.View())
	}
}

func TestSubmitCallsLogin(t *testing.T) {
	var gotUser, gotPassword string
	m := New(func(user, password string) (store.Session, error) {
		gotUser, gotPassword = user, password
		return store.Session{User: user}, nil
	}, "North Wing", theme.Default())

	m.Update(runes("jdoe"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(runes("secret"))
	if strings.Contains(m.View(), "secret") {
		t.Fatal("the password must be masked")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a login command")
	}
	msg, ok := cmd().(events.LoginMsg)
	if !ok || msg.Err != nil || msg.Session.User != "jdoe" {
		t.Fatalf("unexpected result %#v", cmd())
	}
	if gotUser != "jdoe" || gotPassword != "secret" {
		t.Fatalf("login called with %q/%q", gotUser, gotPassword)
	}
}

func TestFailureIsShownAndResetClears(t *testing.T) {
	m := New(func(string, string) (store.Session, error) { return store.Session{}, nil }, "North Wing", theme.Default())
	m.Update(events.LoginMsg{Err: errors.New("locked out")})
	if !strings.Contains(m.View(), "locked out") {
		t.Fatalf("error missing:\n%s", m.View())
	}
	m.Reset()
	if m.Err() != "" {
		t.Fatalf("reset kept %q", m.Err())
	}
}
