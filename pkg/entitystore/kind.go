package entitystore

import (
	"context"

	"tableflip.dev/warden/pkg/filter"
)

// Client is the remote side of a Store. resource.Client satisfies it.
type Client[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, entity T) (T, error)
	Remove(ctx context.Context, key string) error
}

// Messages are the notification texts used by a Store. StatusUpdated is a
// format string receiving the new status.
type Messages struct {
	LoadFailed    string
	Added         string
	AddFailed     string
	Removed       string
	RemoveFailed  string
	StatusUpdated string
	StatusFailed  string
}

// RequiredFields is the description of the local validation notification.
const RequiredFields = "Please fill in all required fields"

// Kind describes one entity kind to the generic Store.
type Kind[T any] struct {
	// Name labels logs, metrics and events ("inmates").
	Name string
	// ID returns the local identifier.
	ID func(T) string
	// Key returns the identifier used to delete the entity remotely. Defaults
	// to ID.
	Key func(T) string
	// Missing lists required fields that are empty on a draft.
	Missing func(T) []string
	// Prepare fills defaults on a draft that passed validation.
	Prepare func(T) T
	// Status reads the status field, for notifications.
	Status func(T) string
	// WithStatus returns a copy carrying status, or an error when status is
	// not valid for the kind. Nil means the kind has no status changes.
	WithStatus func(T, string) (T, error)
	// Filter declares the searchable and categorical fields.
	Filter filter.Spec[T]
	// Messages holds the notification texts.
	Messages Messages
}

func (k Kind[T]) key(item T) string {
	if k.Key != nil {
		return k.Key(item)
	}
	return k.ID(item)
}
