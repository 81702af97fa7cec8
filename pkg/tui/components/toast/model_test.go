package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/tui/theme"
)

func TestPushKeepsNewestWithinLimit(t *testing.T) {
	m := New(theme.Default().Toast, 2)
	m.Push(notify.New(notify.Info, "one", ""))
	m.Push(notify.Successf("two"))
	m.Push(notify.Errorf("three"))

	items := m.Items()
	if len(items) != 2 {
		t.Fatalf("got %d toasts, want 2", len(items))
	}
	if items[0].Description != "two" || items[1].Description != "three" {
		t.Fatalf("unexpected toasts %+v", items)
	}
	if m.Height() != 2 {
		t.Fatalf("height = %d", m.Height())
	}
}

func TestToastExpires(t *testing.T) {
	m := New(theme.Default().Toast, 3)
	m.SetTTL(time.Millisecond)
	keep := notify.Successf("Inmate added successfully")
	cmd := m.Push(notify.Errorf("Failed to load inmates data"))
	m.Push(keep)

	m.Update(cmd())

	items := m.Items()
	if len(items) != 1 || items[0].ID != keep.ID {
		t.Fatalf("expired toast still shown: %+v", items)
	}
}

func TestViewShowsTitleAndDescription(t *testing.T) {
	m := New(theme.Default().Toast, 3)
	m.SetSize(100, 0)
	if m.View() != "" {
		t.Fatal("empty stack should render nothing")
	}
	m.Push(notify.New(notify.Success, "Settings Saved", "All settings have been updated successfully"))
	view := m.View()
	if !strings.Contains(view, "✓ Settings Saved: All settings have been updated successfully") {
		t.Fatalf("unexpected view %q", view)
	}
}

func TestLongToastsAreTruncated(t *testing.T) {
	m := New(theme.Default().Toast, 3)
	m.SetSize(30, 0)
	m.Push(notify.Errorf("Failed to load inmates data: backend unavailable"))
	view := m.View()
	if strings.Contains(view, "\n") || !strings.Contains(view, "…") {
		t.Fatalf("want one truncated line, got %q", view)
	}
	if lipgloss.Width(view) > 30 {
		t.Fatalf("toast wider than the screen: %d", lipgloss.Width(view))
	}
}
