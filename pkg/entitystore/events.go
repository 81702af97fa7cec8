package entitystore

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is the lifecycle state of a Store.
type Phase int

const (
	// Idle means the store is not mounted.
	Idle Phase = iota
	// Loading means a list request is outstanding.
	Loading
	// Ready means the last list request succeeded.
	Ready
	// Failed means the last list request failed; the previous collection is kept.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ChangeType enumerates store change actions.
type ChangeType string

const (
	ChangeReload ChangeType = "reload"
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
	ChangePhase  ChangeType = "phase"
	ChangeFilter ChangeType = "filter"
)

// ChangeMsg announces a change to a store's collection or state.
type ChangeMsg struct {
	Kind   string
	Action ChangeType
	ID     string
	Phase  Phase
}

// Describe renders the change for logs.
func (m ChangeMsg) Describe() string {
	return fmt.Sprintf(`kind:%q action:%q id:%q phase:%q`, m.Kind, m.Action, m.ID, m.Phase)
}

var (
	// ErrNotFound is returned when an operation names an id that is not in
	// the collection.
	ErrNotFound = errors.New("entitystore: not found")
	// ErrUnsupported is returned by SetStatus on kinds without status changes.
	ErrUnsupported = errors.New("entitystore: operation not supported")
	// ErrDiscarded is returned when the store was unmounted or remounted while
	// the request was in flight; the result was not applied.
	ErrDiscarded = errors.New("entitystore: result discarded")
)

// ValidationError lists the required fields missing from a draft.
type ValidationError struct {
	Kind    string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entitystore: %s: missing required fields: %s", e.Kind, strings.Join(e.Missing, ", "))
}
