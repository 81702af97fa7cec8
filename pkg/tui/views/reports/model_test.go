package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/warden/pkg/report"
	"tableflip.dev/warden/pkg/tui/theme"
)

type call struct {
	typ report.Type
	rng report.Range
}

func newPanel(calls *[]call, err error) *Model {
	m := New(context.Background(), func(_ context.Context, t report.Type, rng report.Range) (string, error) {
		*calls = append(*calls, call{t, rng})
		if err != nil {
			return "", err
		}
		return "reports/" + string(t) + ".xlsx", nil
	}, theme.Default())
	m.SetSize(100, 30)
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestCursorWraps(t *testing.T) {
	var calls []call
	m := newPanel(&calls, nil)
	if m.Selected() != report.InmateSummary {
		t.Fatalf("selected = %s", m.Selected())
	}
	press(m, "up")
	if m.Selected() != report.Facility {
		t.Fatalf("up from the first report should wrap, got %s", m.Selected())
	}
	press(m, "down", "down")
	if m.Selected() != report.StaffSchedule {
		t.Fatalf("selected = %s", m.Selected())
	}
}

func TestGenerateWithRange(t *testing.T) {
	var calls []call
	m := newPanel(&calls, nil)

	press(m, "f")
	if !m.Capturing() {
		t.Fatal("f should edit the from date")
	}
	press(m, "2026-02-01", "enter", "t", "2026-02-28", "enter")
	if m.Capturing() {
		t.Fatal("enter should finish editing")
	}

	press(m, "down", "down")
	cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("expected a generate command")
	}
	if !strings.Contains(m.View(), "Generating Visitor Activity Report") {
		t.Fatalf("busy state missing:\n%s", m.View())
	}
	m.Update(cmd())

	if len(calls) != 1 || calls[0].typ != report.VisitorLog {
		t.Fatalf("calls = %+v", calls)
	}
	want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !calls[0].rng.From.Equal(want) {
		t.Fatalf("from = %s", calls[0].rng.From)
	}
	if !strings.Contains(m.View(), "Saved reports/"+string(report.VisitorLog)+".xlsx") {
		t.Fatalf("saved path missing:\n%s", m.View())
	}
}

func TestBackwardsRangeRefused(t *testing.T) {
	var calls []call
	m := newPanel(&calls, nil)
	press(m, "f", "2026-03-01", "enter", "t", "2026-02-01", "enter")
	if cmd := press(m, "g"); cmd != nil {
		t.Fatal("a backwards range should not generate")
	}
	if !strings.Contains(m.View(), "range ends before it starts") {
		t.Fatalf("error missing:\n%s", m.View())
	}
}

func TestGenerateFailureShown(t *testing.T) {
	var calls []call
	m := newPanel(&calls, errors.New("failed to load inmates data"))
	cmd := press(m, "g")
	m.Update(cmd())
	if !strings.Contains(m.View(), "failed to load inmates data") {
		t.Fatalf("error missing:\n%s", m.View())
	}
}
