package prompt

import (
	"testing"
)

func TestSelectNeedsItems(t *testing.T) {
	p := &Prompter{}
	if _, err := p.Select("Cell", nil); err == nil {
		t.Fatal("expected an error for an empty selection")
	}
}

func TestFormSkipsAnsweredFields(t *testing.T) {
	p := &Prompter{}
	got, err := p.Form([]Field{
		{Name: "name", Label: "Name", Skip: true},
		{Name: "block", Label: "Block", Options: []string{"A", "B"}, Skip: true},
	})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no answers, got %v", got)
	}
}

func TestNopWriteCloser(t *testing.T) {
	var w nopWriteCloser
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
