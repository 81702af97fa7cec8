// Package prompt asks for input on the terminal with promptui.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrEmpty is returned by validation when a required answer is blank.
var ErrEmpty = errors.New("prompt: answer required")

// Prompter reads answers from In and draws prompts on Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

func (p *Prompter) stdin() io.ReadCloser {
	if p == nil || p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p *Prompter) stdout() io.WriteCloser {
	if p == nil || p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

// Text asks for a line of text. An empty answer yields def.
func (p *Prompter) Text(label, def string, required bool) (string, error) {
	return p.text(label, def, required, 0, nil)
}

// Password asks for a secret without echoing it.
func (p *Prompter) Password(label string) (string, error) {
	return p.text(label, "", true, '*', nil)
}

// Int asks for a positive integer.
func (p *Prompter) Int(label, def string) (int, error) {
	answer, err := p.text(label, def, true, 0, func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return fmt.Errorf("prompt: %q is not a positive number", s)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func (p *Prompter) text(label, def string, required bool, mask rune, check func(string) error) (string, error) {
	display := label
	if def != "" {
		display = fmt.Sprintf("%s [%s]", label, def)
	}
	validate := func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" {
			if required && def == "" {
				return ErrEmpty
			}
			return nil
		}
		if check != nil {
			return check(input)
		}
		return nil
	}
	prompt := promptui.Prompt{
		Label:     display,
		Templates: templates,
		Validate:  validate,
		Mask:      mask,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = def
	}
	return result, nil
}

// Select asks for one of items. Typing filters the list.
func (p *Prompter) Select(label string, items []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("prompt: nothing to choose for %s", strings.ToLower(label))
	}
	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}
	prompt := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ . | bold }}",
			Inactive: "   {{ . }}",
			Selected: "{{ . | bold | green }}",
		},
		Size:     10,
		Searcher: searcher,
		Stdin:    p.stdin(),
		Stdout:   p.stdout(),
	}
	_, result, err := prompt.Run()
	return result, err
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	return err == nil, err
}

// Field is one question of a Form.
type Field struct {
	Name     string
	Label    string
	Default  string
	Required bool
	// Options turns the question into a selection.
	Options []string
	// Skip leaves the field out when it already has a value.
	Skip bool
}

// Form asks every field in order and returns the answers by name.
func (p *Prompter) Form(fields []Field) (map[string]string, error) {
	answers := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Skip {
			continue
		}
		var (
			answer string
			err    error
		)
		if len(f.Options) > 0 {
			answer, err = p.Select(f.Label, f.Options)
		} else {
			answer, err = p.Text(f.Label, f.Default, f.Required)
		}
		if err != nil {
			return nil, err
		}
		answers[f.Name] = answer
	}
	return answers, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
