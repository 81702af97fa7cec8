package teaui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/store"
	"tableflip.dev/warden/pkg/tui/events"
)

// emptyAPI answers every list with an empty array.
func emptyAPI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]any{})
	})
}

func newService(t *testing.T, api http.Handler) *app.Service {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := &store.Config{Path: t.TempDir(), Server: srv.URL + "/api/", Timeout: time.Second}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc, err := app.New(app.Options{Config: cfg, Persistence: p, Logger: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(svc.UnmountAll)
	return svc
}

func newShell(t *testing.T, signedIn bool) (*Model, *app.Service) {
	t.Helper()
	svc := newService(t, emptyAPI())
	if signedIn {
		if _, err := svc.Login("jdoe", "secret"); err != nil {
			t.Fatalf("login: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := New(ctx, svc, Options{Logger: zaptest.NewLogger(t)})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, svc
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoginShownWithoutSession(t *testing.T) {
	m, _ := newShell(t, false)
	if m.SignedIn() {
		t.Fatal("no session should mean the login screen")
	}
	view := m.View()
	if !strings.Contains(view, "Sign in to continue") {
		t.Fatalf("expected the login screen:\n%s", view)
	}

	// Panel keys do nothing before login.
	m.Update(keyMsg("5"))
	if m.Active().Title() != "Dashboard" {
		t.Fatalf("active = %s before login", m.Active().Title())
	}
}

func TestLoginEntersDashboard(t *testing.T) {
	m, svc := newShell(t, false)
	session, err := svc.Login("jdoe", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	_, cmd := m.Update(events.LoginMsg{Session: session})
	if cmd == nil {
		t.Fatal("entering the dashboard should load it")
	}
	if !m.SignedIn() {
		t.Fatal("expected to be signed in")
	}
	view := m.View()
	if !strings.Contains(view, "Dashboard") || !strings.Contains(view, "jdoe") {
		t.Fatalf("header missing panel or user:\n%s", view)
	}
}

func TestFailedLoginStaysOnLoginScreen(t *testing.T) {
	m, _ := newShell(t, false)
	m.Update(events.LoginMsg{Err: app.ErrCredentials})
	if m.SignedIn() {
		t.Fatal("a failed login must not sign in")
	}
	if !strings.Contains(m.View(), "username and password are required") {
		t.Fatalf("error not shown:\n%s", m.View())
	}
}

func TestPanelSwitching(t *testing.T) {
	m, _ := newShell(t, true)
	if !m.SignedIn() {
		t.Fatal("saved session should skip the login screen")
	}

	steps := []struct {
		key  string
		want string
	}{
		{"5", "Cells"},
		{"2", "Inmates"},
		{"tab", "Staff"},
		{"tab", "Visitors"},
		{"shift+tab", "Staff"},
		{"7", "Settings"},
		{"tab", "Dashboard"},
		{"shift+tab", "Settings"},
		{"6", "Reports"},
	}
	for _, s := range steps {
		m.Update(keyMsg(s.key))
		if got := m.Active().Title(); got != s.want {
			t.Fatalf("after %q active = %s, want %s", s.key, got, s.want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newShell(t, true)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, svc := newShell(t, true)
	m.Update(keyMsg("3"))
	m.Update(keyMsg("ctrl+o"))

	if m.SignedIn() {
		t.Fatal("ctrl+o should sign out")
	}
	if _, err := svc.WhoAmI(); err == nil {
		t.Fatal("the saved session should be cleared")
	}
	if m.Active().Title() != "Dashboard" {
		t.Fatalf("the next login should land on the dashboard, got %s", m.Active().Title())
	}
	if svc.Staff.Mounted() {
		t.Fatal("collections should be discarded on logout")
	}
}

func TestGuideToggles(t *testing.T) {
	m, _ := newShell(t, true)
	m.Update(keyMsg("?"))
	if !m.showGuide {
		t.Fatal("? should open the guide")
	}
	// Panel keys are held while the guide is open.
	m.Update(keyMsg("4"))
	if m.Active().Title() != "Dashboard" {
		t.Fatalf("guide should hold panel keys, active = %s", m.Active().Title())
	}
	if !strings.Contains(m.View(), "close help") {
		t.Fatalf("footer should offer to close the guide:\n%s", m.View())
	}
	m.Update(keyMsg("esc"))
	if m.showGuide {
		t.Fatal("esc should close the guide")
	}
}

func TestNotificationsBecomeToasts(t *testing.T) {
	m, _ := newShell(t, true)
	m.Update(events.NotificationMsg{Notification: notify.Successf("Inmate added successfully")})
	if !strings.Contains(m.View(), "Inmate added successfully") {
		t.Fatalf("toast missing:\n%s", m.View())
	}
}

func TestEventLogToggle(t *testing.T) {
	m, _ := newShell(t, true)
	m.Update(keyMsg("ctrl+e"))
	m.Update(events.NotificationMsg{Notification: notify.Errorf("Failed to load cells data")})
	if !strings.Contains(m.View(), "Events (") {
		t.Fatalf("event log not shown:\n%s", m.View())
	}
	m.Update(keyMsg("ctrl+e"))
	if strings.Contains(m.View(), "Events (") {
		t.Fatal("ctrl+e should hide the event log")
	}
}
