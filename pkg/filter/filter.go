// Package filter combines free-text search and categorical filters into a
// single predicate over an in-memory collection. A Spec is declared once per
// entity kind; matching is a pure function of the entity and a State.
package filter

import (
	"fmt"
	"sort"
	"strings"
)

// All matches every value of a categorical field.
const All = "All"

// Field names one string-valued projection of an entity.
type Field[T any] struct {
	Name  string
	Value func(T) string
}

// Spec lists the fields searched by free text and the fields that can carry a
// categorical constraint.
type Spec[T any] struct {
	Search     []Field[T]
	Categories []Field[T]
}

// State is the filter input for one panel. The zero value matches everything.
type State struct {
	Search     string
	Categories map[string]string
}

// With returns a copy of s with the named category set to value. Setting All
// (or an empty value) clears the constraint.
func (s State) With(name, value string) State {
	out := State{Search: s.Search, Categories: make(map[string]string, len(s.Categories)+1)}
	for k, v := range s.Categories {
		out.Categories[k] = v
	}
	value = strings.TrimSpace(value)
	if value == "" || value == All {
		delete(out.Categories, name)
	} else {
		out.Categories[name] = value
	}
	return out
}

// WithSearch returns a copy of s with the search term replaced.
func (s State) WithSearch(term string) State {
	out := s.With("", "")
	out.Search = term
	return out
}

// Value returns the active value for a category, or All when unconstrained.
func (s State) Value(name string) string {
	if v, ok := s.Categories[name]; ok && v != "" {
		return v
	}
	return All
}

// Active returns the names of the constrained categories in sorted order.
func (s State) Active() []string {
	names := make([]string, 0, len(s.Categories))
	for name, v := range s.Categories {
		if v != "" && v != All {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Empty reports whether s matches everything.
func (s State) Empty() bool {
	return strings.TrimSpace(s.Search) == "" && len(s.Active()) == 0
}

// Matches reports whether entity satisfies every active categorical filter and
// the search term is empty or a case-insensitive substring of at least one
// searchable field. A constraint on a category the spec does not declare never
// matches.
func (sp Spec[T]) Matches(entity T, st State) bool {
	for _, name := range st.Active() {
		field, ok := sp.category(name)
		if !ok {
			return false
		}
		if field.Value(entity) != st.Categories[name] {
			return false
		}
	}
	term := strings.ToLower(strings.TrimSpace(st.Search))
	if term == "" {
		return true
	}
	for _, field := range sp.Search {
		if strings.Contains(strings.ToLower(field.Value(entity)), term) {
			return true
		}
	}
	return false
}

// Apply returns the entities matching st, preserving order. The input slice is
// not modified.
func (sp Spec[T]) Apply(items []T, st State) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if sp.Matches(item, st) {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks that every constrained category in st is declared by sp.
func (sp Spec[T]) Validate(st State) error {
	for _, name := range st.Active() {
		if _, ok := sp.category(name); !ok {
			return fmt.Errorf("filter: unknown category %q", name)
		}
	}
	return nil
}

// CategoryNames returns the declared categorical field names in order.
func (sp Spec[T]) CategoryNames() []string {
	names := make([]string, len(sp.Categories))
	for i, f := range sp.Categories {
		names[i] = f.Name
	}
	return names
}

// Distinct returns the sorted distinct values a category takes across items.
// Useful for building filter options from data (e.g. blocks).
func (sp Spec[T]) Distinct(items []T, name string) []string {
	field, ok := sp.category(name)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		v := field.Value(item)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (sp Spec[T]) category(name string) (Field[T], bool) {
	for _, f := range sp.Categories {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}
