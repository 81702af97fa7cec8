// Package entitystore keeps one panel's collection in memory. A Store lists
// the collection on Mount, runs every mutation through its Client, applies
// only server-confirmed results, and reports each outcome as a notification.
//
// Store operations block until the request completes; callers that must stay
// responsive (the dashboard) run them from a tea.Cmd. Results of requests that
// were started before the latest Mount or Unmount are discarded.
package entitystore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/warden/pkg/filter"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/resource"
)

// Observer records operation outcomes. metrics.Metrics satisfies it.
type Observer interface {
	ObserveOperation(kind, op string, err error)
}

// Store is the in-memory state of one entity kind.
type Store[T any] struct {
	kind     Kind[T]
	client   Client[T]
	sink     notify.Sink
	logger   *zap.Logger
	observer Observer

	mu         sync.RWMutex
	phase      Phase
	err        error
	items      []T
	filter     filter.State
	generation uint64
	mounted    bool

	eventCh chan ChangeMsg
}

// Option customizes a Store.
type Option func(*config)

type config struct {
	sink     notify.Sink
	logger   *zap.Logger
	observer Observer
	buffer   int
}

// WithSink routes notifications to sink.
func WithSink(sink notify.Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithObserver records operation outcomes.
func WithObserver(o Observer) Option {
	return func(c *config) { c.observer = o }
}

// WithBuffer sets the event channel size (default 64).
func WithBuffer(n int) Option {
	return func(c *config) { c.buffer = n }
}

// New creates an idle store for kind backed by client.
func New[T any](kind Kind[T], client Client[T], opts ...Option) *Store[T] {
	cfg := config{sink: notify.Discard, logger: zap.NewNop(), buffer: 64}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.buffer <= 0 {
		cfg.buffer = 64
	}
	return &Store[T]{
		kind:     kind,
		client:   client,
		sink:     cfg.sink,
		logger:   cfg.logger.With(zap.String("kind", kind.Name)),
		observer: cfg.observer,
		items:    []T{},
		eventCh:  make(chan ChangeMsg, cfg.buffer),
	}
}

// Name returns the kind name.
func (s *Store[T]) Name() string {
	return s.kind.Name
}

// Events exposes change notifications. Events are dropped when the buffer is
// full; consumers re-read the store on any event.
func (s *Store[T]) Events() <-chan ChangeMsg {
	return s.eventCh
}

// Mount starts a new lifecycle and lists the collection.
func (s *Store[T]) Mount(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	s.mounted = true
	gen := s.generation
	s.mu.Unlock()
	return s.load(ctx, gen)
}

// Reload lists the collection again without starting a new lifecycle. On
// failure the current collection is kept.
func (s *Store[T]) Reload(ctx context.Context) error {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()
	return s.load(ctx, gen)
}

// Unmount ends the lifecycle, forgets the collection and makes any request
// still in flight discard its result.
func (s *Store[T]) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.mounted = false
	s.phase = Idle
	s.err = nil
	s.items = []T{}
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangePhase, Phase: Idle})
}

// Mounted reports whether the store is between Mount and Unmount.
func (s *Store[T]) Mounted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mounted
}

func (s *Store[T]) load(ctx context.Context, gen uint64) error {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return ErrDiscarded
	}
	s.phase = Loading
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangePhase, Phase: Loading})
	s.mu.Unlock()

	s.logger.Debug("listing")
	items, err := s.client.List(ctx)
	s.observe("list", err)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("discarding stale list result")
		return ErrDiscarded
	}
	if err != nil {
		s.phase = Failed
		s.err = err
		s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangePhase, Phase: Failed})
		s.mu.Unlock()
		s.sink.Notify(notify.Errorf("%s", s.kind.Messages.LoadFailed))
		return err
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	s.phase = Ready
	s.err = nil
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeReload, Phase: Ready})
	s.mu.Unlock()
	s.logger.Debug("listed", zap.Int("count", len(items)))
	return nil
}

// Add validates draft locally, creates it remotely and appends the server's
// version of the entity. A draft with missing required fields never reaches
// the network.
func (s *Store[T]) Add(ctx context.Context, draft T) (T, error) {
	var zero T
	if s.kind.Missing != nil {
		if missing := s.kind.Missing(draft); len(missing) > 0 {
			err := &ValidationError{Kind: s.kind.Name, Missing: missing}
			s.logger.Debug("rejected draft", zap.Strings("missing", missing))
			s.observe("add", err)
			s.sink.Notify(notify.Errorf("%s", RequiredFields))
			return zero, err
		}
	}
	if s.kind.Prepare != nil {
		draft = s.kind.Prepare(draft)
	}

	gen := s.currentGeneration()
	created, err := s.client.Create(ctx, draft)
	s.observe("add", err)
	if err != nil {
		s.sink.Notify(notify.Errorf("%s", failure(s.kind.Messages.AddFailed, err)))
		return zero, err
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("discarding stale create result")
		return created, ErrDiscarded
	}
	id := s.kind.ID(created)
	if i := s.indexLocked(id); i >= 0 && id != "" {
		s.items[i] = created
	} else {
		s.items = append(s.items, created)
	}
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeCreate, ID: id, Phase: s.phase})
	s.mu.Unlock()

	s.sink.Notify(notify.Successf("%s", s.kind.Messages.Added))
	return created, nil
}

// Remove deletes the entity whose id (or remote key) is id. Removing an id
// that is not in the collection still asks the server, which treats an
// absent entity as already deleted.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.mu.RLock()
	key := id
	if i := s.locateLocked(id); i >= 0 {
		key = s.kind.key(s.items[i])
	}
	gen := s.generation
	s.mu.RUnlock()

	err := s.client.Remove(ctx, key)
	s.observe("remove", err)
	if err != nil {
		s.sink.Notify(notify.Errorf("%s", failure(s.kind.Messages.RemoveFailed, err)))
		return err
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return ErrDiscarded
	}
	kept := s.items[:0:0]
	for _, item := range s.items {
		if s.kind.ID(item) == id || s.kind.key(item) == key {
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeDelete, ID: id, Phase: s.phase})
	s.mu.Unlock()

	s.sink.Notify(notify.Successf("%s", s.kind.Messages.Removed))
	return nil
}

// SetStatus sends the found entity with its status replaced and swaps in the
// server's response.
func (s *Store[T]) SetStatus(ctx context.Context, id, status string) (T, error) {
	var zero T
	if s.kind.WithStatus == nil {
		return zero, fmt.Errorf("%w: %s has no status", ErrUnsupported, s.kind.Name)
	}

	s.mu.RLock()
	i := s.indexLocked(id)
	var found T
	if i >= 0 {
		found = s.items[i]
	}
	gen := s.generation
	s.mu.RUnlock()

	if i < 0 {
		err := fmt.Errorf("%w: %s %q", ErrNotFound, s.kind.Name, id)
		s.observe("status", err)
		s.sink.Notify(notify.Errorf("%s", s.kind.Messages.StatusFailed))
		return zero, err
	}

	merged, err := s.kind.WithStatus(found, status)
	if err != nil {
		s.observe("status", err)
		s.sink.Notify(notify.Errorf("%s: %v", s.kind.Messages.StatusFailed, err))
		return zero, err
	}

	updated, err := s.client.Update(ctx, id, merged)
	s.observe("status", err)
	if err != nil {
		s.sink.Notify(notify.Errorf("%s", failure(s.kind.Messages.StatusFailed, err)))
		return zero, err
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return updated, ErrDiscarded
	}
	if j := s.indexLocked(id); j >= 0 {
		s.items[j] = updated
	}
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeUpdate, ID: id, Phase: s.phase})
	s.mu.Unlock()

	applied := status
	if s.kind.Status != nil {
		if reported := s.kind.Status(updated); reported != "" {
			applied = reported
		}
	}
	s.sink.Notify(notify.Successf(s.kind.Messages.StatusUpdated, applied))
	return updated, nil
}

// SetSearch replaces the free-text search term.
func (s *Store[T]) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = s.filter.WithSearch(term)
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeFilter, Phase: s.phase})
}

// SetFilter constrains a categorical field; filter.All clears it.
func (s *Store[T]) SetFilter(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = s.filter.With(name, value)
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeFilter, Phase: s.phase})
}

// ResetFilters clears the search term and every categorical filter.
func (s *Store[T]) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter.State{}
	s.emit(ChangeMsg{Kind: s.kind.Name, Action: ChangeFilter, Phase: s.phase})
}

// FilterState returns the current filter input.
func (s *Store[T]) FilterState() filter.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.WithSearch(s.filter.Search)
}

// Filtered returns the collection entries matching the filter state.
func (s *Store[T]) Filtered() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind.Filter.Apply(s.items, s.filter)
}

// Items returns a copy of the whole collection.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the entity with the given id.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.locateLocked(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Len returns the collection size.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// State returns the lifecycle phase.
func (s *Store[T]) State() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Err returns the error of the last failed list, if the store is in Failed.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FilterSpec exposes the kind's filter declaration.
func (s *Store[T]) FilterSpec() filter.Spec[T] {
	return s.kind.Filter
}

// CanSetStatus reports whether SetStatus is supported for the kind.
func (s *Store[T]) CanSetStatus() bool {
	return s.kind.WithStatus != nil
}

func (s *Store[T]) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store[T]) indexLocked(id string) int {
	for i, item := range s.items {
		if s.kind.ID(item) == id {
			return i
		}
	}
	return -1
}

// locateLocked matches the local id first, then the remote key.
func (s *Store[T]) locateLocked(id string) int {
	if i := s.indexLocked(id); i >= 0 {
		return i
	}
	for i, item := range s.items {
		if s.kind.key(item) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) emit(msg ChangeMsg) {
	select {
	case s.eventCh <- msg:
	default:
	}
}

func (s *Store[T]) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveOperation(s.kind.Name, op, err)
	}
	if err != nil && !errors.Is(err, ErrDiscarded) {
		s.logger.Debug("operation failed", zap.String("op", op), zap.Error(err))
	}
}

// failure appends a server supplied reason to a failure message.
func failure(message string, err error) string {
	var rerr *resource.Error
	if errors.As(err, &rerr) && rerr.Message != "" {
		return fmt.Sprintf("%s: %s", message, rerr.Message)
	}
	return message
}
