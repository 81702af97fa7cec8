package entitystore

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"tableflip.dev/warden/pkg/filter"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/resource"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type prisoner struct {
	ID     string
	Code   string
	Name   string
	Status string
}

var prisonerKind = Kind[prisoner]{
	Name: "prisoners",
	ID:   func(p prisoner) string { return p.ID },
	Key:  func(p prisoner) string { return p.Code },
	Missing: func(p prisoner) []string {
		if strings.TrimSpace(p.Name) == "" {
			return []string{"name"}
		}
		return nil
	},
	Prepare: func(p prisoner) prisoner {
		if p.Status == "" {
			p.Status = "Active"
		}
		return p
	},
	Status: func(p prisoner) string { return p.Status },
	WithStatus: func(p prisoner, status string) (prisoner, error) {
		switch status {
		case "Active", "Released", "Transferred":
			p.Status = status
			return p, nil
		}
		return p, fmt.Errorf("unknown status %q", status)
	},
	Filter: filter.Spec[prisoner]{
		Search:     []filter.Field[prisoner]{{Name: "name", Value: func(p prisoner) string { return p.Name }}},
		Categories: []filter.Field[prisoner]{{Name: "status", Value: func(p prisoner) string { return p.Status }}},
	},
	Messages: Messages{
		LoadFailed:    "Failed to load prisoners",
		Added:         "Prisoner added successfully",
		AddFailed:     "Failed to add prisoner",
		Removed:       "Prisoner removed successfully",
		RemoveFailed:  "Failed to remove prisoner",
		StatusUpdated: "Prisoner status updated to %s",
		StatusFailed:  "Failed to update status",
	},
}

// fakeClient is an in-memory Client whose calls can fail or block on demand.
type fakeClient struct {
	mu      sync.Mutex
	items   []prisoner
	calls   []string
	nextID  int
	listErr error
	mutErr  error
	// gate, when set, is received from before List returns.
	gate chan struct{}
	// mutGate does the same for Create, Update and Remove.
	mutGate chan struct{}
	// serverStatus, when set, overrides the status Update reports back.
	serverStatus string
}

func (f *fakeClient) wait() {
	if f.mutGate != nil {
		<-f.mutGate
	}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) List(ctx context.Context) ([]prisoner, error) {
	f.record("list")
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]prisoner(nil), f.items...), nil
}

func (f *fakeClient) Create(ctx context.Context, draft prisoner) (prisoner, error) {
	f.record("create")
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return prisoner{}, f.mutErr
	}
	f.nextID++
	draft.ID = fmt.Sprintf("srv-%d", f.nextID)
	draft.Code = fmt.Sprintf("INM%03d", f.nextID)
	f.items = append(f.items, draft)
	return draft, nil
}

func (f *fakeClient) Update(ctx context.Context, id string, entity prisoner) (prisoner, error) {
	f.record("update " + id)
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return prisoner{}, f.mutErr
	}
	// The server normalizes names, so the response differs from the request.
	entity.Name = strings.ToUpper(entity.Name)
	if f.serverStatus != "" {
		entity.Status = f.serverStatus
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = entity
		}
	}
	return entity, nil
}

func (f *fakeClient) Remove(ctx context.Context, key string) error {
	f.record("remove " + key)
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return f.mutErr
	}
	kept := f.items[:0]
	for _, p := range f.items {
		if p.Code != key {
			kept = append(kept, p)
		}
	}
	f.items = kept
	return nil
}

func newTestStore(t *testing.T, client *fakeClient) (*Store[prisoner], *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	return New[prisoner](prisonerKind, client, WithSink(rec), WithLogger(zaptest.NewLogger(t))), rec
}

func seeded() *fakeClient {
	return &fakeClient{
		items: []prisoner{
			{ID: "1", Code: "INM001", Name: "John Doe", Status: "Active"},
			{ID: "2", Code: "INM002", Name: "Jane Roe", Status: "Released"},
		},
		nextID: 2,
	}
}

func TestMountLoadsCollection(t *testing.T) {
	s, rec := newTestStore(t, seeded())
	assert.Equal(t, Idle, s.State())

	require.NoError(t, s.Mount(context.Background()))
	assert.Equal(t, Ready, s.State())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Mounted())
	assert.Empty(t, rec.All())
}

func TestMountFailureKeepsLastKnownCollection(t *testing.T) {
	client := seeded()
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	client.listErr = resource.ErrFetchFailed
	err := s.Reload(context.Background())
	require.ErrorIs(t, err, resource.ErrFetchFailed)
	assert.Equal(t, Failed, s.State())
	assert.ErrorIs(t, s.Err(), resource.ErrFetchFailed)
	assert.Equal(t, 2, s.Len(), "last known collection must survive a failed reload")

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Error, last.Severity)
	assert.Equal(t, "Failed to load prisoners", last.Description)
}

func TestFirstLoadFailureLeavesEmptyCollection(t *testing.T) {
	client := &fakeClient{listErr: errors.New("connection refused")}
	s, _ := newTestStore(t, client)
	require.Error(t, s.Mount(context.Background()))
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Items())
}

func TestAddWithMissingFieldNeverCallsNetwork(t *testing.T) {
	client := seeded()
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))
	before := s.Items()

	_, err := s.Add(context.Background(), prisoner{Name: "  "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name"}, verr.Missing)

	assert.Equal(t, []string{"list"}, client.Calls())
	assert.Equal(t, before, s.Items())
	last, _ := rec.Last()
	assert.Equal(t, RequiredFields, last.Description)
	assert.Equal(t, "Error", last.Title)
}

func TestAddAppendsServerEntity(t *testing.T) {
	s, rec := newTestStore(t, seeded())
	require.NoError(t, s.Mount(context.Background()))

	got, err := s.Add(context.Background(), prisoner{Name: "New Guy"})
	require.NoError(t, err)
	assert.Equal(t, prisoner{ID: "srv-3", Code: "INM003", Name: "New Guy", Status: "Active"}, got)

	assert.Equal(t, 3, s.Len())
	stored, ok := s.Find("srv-3")
	require.True(t, ok)
	assert.Equal(t, got, stored, "collection must hold the server entity, not the draft")

	last, _ := rec.Last()
	assert.Equal(t, notify.Success, last.Severity)
	assert.Equal(t, "Prisoner added successfully", last.Description)
}

func TestAddFailureLeavesCollectionUnchanged(t *testing.T) {
	client := seeded()
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	client.mutErr = &resource.Error{Op: "create", Resource: "prisoners", Status: 409, Message: "Cell is already full.", Kind: resource.ErrRejected}
	_, err := s.Add(context.Background(), prisoner{Name: "Late"})
	require.ErrorIs(t, err, resource.ErrRejected)
	assert.Equal(t, 2, s.Len())

	last, _ := rec.Last()
	assert.Equal(t, "Failed to add prisoner: Cell is already full.", last.Description)
}

func TestRemoveUsesRemoteKeyAndIsRepeatable(t *testing.T) {
	client := seeded()
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	require.NoError(t, s.Remove(context.Background(), "1"))
	_, ok := s.Find("1")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Remove(context.Background(), "1"))
	assert.Equal(t, []string{"list", "remove INM001", "remove 1"}, client.Calls())
	assert.Len(t, rec.All(), 2)
}

func TestRemoveByRemoteKey(t *testing.T) {
	s, _ := newTestStore(t, seeded())
	require.NoError(t, s.Mount(context.Background()))

	require.NoError(t, s.Remove(context.Background(), "INM002"))
	_, ok := s.Find("2")
	assert.False(t, ok)
}

func TestRemoveFailureKeepsEntity(t *testing.T) {
	client := seeded()
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	client.mutErr = resource.ErrFetchFailed
	require.Error(t, s.Remove(context.Background(), "1"))
	assert.Equal(t, 2, s.Len())
	last, _ := rec.Last()
	assert.Equal(t, notify.Error, last.Severity)
}

func TestSetStatusReplacesWithServerValue(t *testing.T) {
	client := seeded()
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	got, err := s.SetStatus(context.Background(), "1", "Transferred")
	require.NoError(t, err)
	assert.Equal(t, "JOHN DOE", got.Name)

	stored, _ := s.Find("1")
	assert.Equal(t, prisoner{ID: "1", Code: "INM001", Name: "JOHN DOE", Status: "Transferred"}, stored)
	last, _ := rec.Last()
	assert.Equal(t, "Prisoner status updated to Transferred", last.Description)
}

func TestSetStatusErrors(t *testing.T) {
	client := seeded()
	s, _ := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	_, err := s.SetStatus(context.Background(), "nope", "Active")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.SetStatus(context.Background(), "1", "Escaped")
	require.Error(t, err)

	client.mutErr = resource.ErrFetchFailed
	_, err = s.SetStatus(context.Background(), "1", "Released")
	require.ErrorIs(t, err, resource.ErrFetchFailed)
	stored, _ := s.Find("1")
	assert.Equal(t, "Active", stored.Status)

	assert.Equal(t, []string{"list", "update 1"}, client.Calls())

	noStatus := prisonerKind
	noStatus.WithStatus = nil
	plain := New[prisoner](noStatus, client)
	_, err = plain.SetStatus(context.Background(), "1", "Active")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, plain.CanSetStatus())
}

func TestFilteredTracksCollectionAndFilter(t *testing.T) {
	s, _ := newTestStore(t, seeded())
	require.NoError(t, s.Mount(context.Background()))

	s.SetFilter("status", "Active")
	want := []prisoner{{ID: "1", Code: "INM001", Name: "John Doe", Status: "Active"}}
	if diff := cmp.Diff(want, s.Filtered()); diff != "" {
		t.Fatalf("filtered mismatch (-want +got):\n%s", diff)
	}

	_, err := s.Add(context.Background(), prisoner{Name: "Another John"})
	require.NoError(t, err)
	assert.Len(t, s.Filtered(), 2)

	s.SetSearch("another")
	assert.Len(t, s.Filtered(), 1)

	s.ResetFilters()
	assert.Len(t, s.Filtered(), 3)
	assert.True(t, s.FilterState().Empty())
}

func TestUnmountDiscardsInFlightList(t *testing.T) {
	client := seeded()
	client.gate = make(chan struct{})
	s, _ := newTestStore(t, client)

	done := make(chan error, 1)
	go func() {
		done <- s.Mount(context.Background())
	}()

	// Wait until the list call is in flight.
	for len(client.Calls()) == 0 {
		runtime.Gosched()
	}
	s.Unmount()
	close(client.gate)

	require.ErrorIs(t, <-done, ErrDiscarded)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 0, s.Len())
}

func TestSetStatusReportsServerStatus(t *testing.T) {
	client := seeded()
	client.serverStatus = "Released"
	s, rec := newTestStore(t, client)
	require.NoError(t, s.Mount(context.Background()))

	got, err := s.SetStatus(context.Background(), "1", "Transferred")
	require.NoError(t, err)
	assert.Equal(t, "Released", got.Status)

	last, _ := rec.Last()
	assert.Equal(t, "Prisoner status updated to Released", last.Description)
}

func TestUnmountDiscardsInFlightMutations(t *testing.T) {
	tests := map[string]func(s *Store[prisoner]) error{
		"add": func(s *Store[prisoner]) error {
			_, err := s.Add(context.Background(), prisoner{Name: "Late Arrival"})
			return err
		},
		"remove": func(s *Store[prisoner]) error {
			return s.Remove(context.Background(), "1")
		},
		"status": func(s *Store[prisoner]) error {
			_, err := s.SetStatus(context.Background(), "1", "Transferred")
			return err
		},
	}
	for name, run := range tests {
		t.Run(name, func(t *testing.T) {
			client := seeded()
			s, rec := newTestStore(t, client)
			require.NoError(t, s.Mount(context.Background()))
			client.mutGate = make(chan struct{})

			done := make(chan error, 1)
			go func() {
				done <- run(s)
			}()

			// Wait until the mutation is in flight.
			for len(client.Calls()) < 2 {
				runtime.Gosched()
			}
			s.Unmount()
			close(client.mutGate)

			require.ErrorIs(t, <-done, ErrDiscarded)
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, Idle, s.State())
			assert.Empty(t, rec.All())
		})
	}
}

func TestEventsAreEmitted(t *testing.T) {
	s, _ := newTestStore(t, seeded())
	require.NoError(t, s.Mount(context.Background()))
	_, err := s.Add(context.Background(), prisoner{Name: "Evt"})
	require.NoError(t, err)

	var actions []ChangeType
	for len(s.Events()) > 0 {
		actions = append(actions, (<-s.Events()).Action)
	}
	assert.Equal(t, []ChangeType{ChangePhase, ChangeReload, ChangeCreate}, actions)
}

func TestEventsDropWhenFull(t *testing.T) {
	s := New[prisoner](prisonerKind, seeded(), WithBuffer(1))
	s.SetSearch("a")
	s.SetSearch("b")
	assert.Len(t, s.Events(), 1)
	msg := <-s.Events()
	assert.Contains(t, msg.Describe(), `action:"filter"`)
}

type opCounter struct {
	mu  sync.Mutex
	ops map[string]int
}

func (o *opCounter) ObserveOperation(kind, op string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ops == nil {
		o.ops = map[string]int{}
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.ops[op+"/"+outcome]++
}

func TestObserverCountsOperations(t *testing.T) {
	obs := &opCounter{}
	s := New[prisoner](prisonerKind, seeded(), WithObserver(obs))
	require.NoError(t, s.Mount(context.Background()))
	_, _ = s.Add(context.Background(), prisoner{})
	_, _ = s.Add(context.Background(), prisoner{Name: "ok"})
	assert.Equal(t, map[string]int{"list/ok": 1, "add/error": 1, "add/ok": 1}, obs.ops)
}
