package sidebar

import (
	"strings"
	"testing"

	"tableflip.dev/warden/pkg/tui/theme"
)

func TestSelectWraps(t *testing.T) {
	m := New(theme.Default().Sidebar, "Dashboard", "Inmates", "Cells")
	m.Select(-1)
	if m.Selected() != 2 {
		t.Fatalf("selected = %d, want 2", m.Selected())
	}
	m.Select(3)
	if m.Selected() != 0 {
		t.Fatalf("selected = %d, want 0", m.Selected())
	}
}

func TestViewNumbersEntries(t *testing.T) {
	m := New(theme.Default().Sidebar, "Dashboard", "Inmates")
	view := m.View()
	if !strings.Contains(view, "1 Dashboard") || !strings.Contains(view, "2 Inmates") {
		t.Fatalf("unexpected sidebar:\n%s", view)
	}
	if m.Width() < len("Dashboard") {
		t.Fatalf("width %d too small", m.Width())
	}
}
