package resource

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type visit struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	InmateVisiting string `json:"inmateVisiting"`
	Status         string `json:"status"`
}

var visitFields = FieldMap{{Local: "inmateVisiting", Wire: "visitingInmate"}}

type recorded struct {
	Method string
	Path   string
	Body   map[string]any
	Header http.Header
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	handler  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	f.handler(w, r)
}

func (f *fakeAPI) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newVisitClient(t *testing.T, handler http.HandlerFunc) (*Client[visit], *fakeAPI) {
	t.Helper()
	api := &fakeAPI{handler: handler}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	rc := NewHTTP(srv.URL+"/api/", time.Second, zaptest.NewLogger(t))
	return New[visit](rc, Config{Name: "visitors", Path: "visitors", Fields: visitFields}, WithLogger(zaptest.NewLogger(t))), api
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func TestListTranslatesWireNames(t *testing.T) {
	c, api := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"_id":"v1","name":"Mary","visitingInmate":"John Doe","status":"Scheduled"},
			{"id":7,"name":"Bob","visitingInmate":"Jim","status":"Completed"}
		]`)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []visit{
		{ID: "v1", Name: "Mary", InmateVisiting: "John Doe", Status: "Scheduled"},
		{ID: "7", Name: "Bob", InmateVisiting: "Jim", Status: "Completed"},
	}, got)

	req := api.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/visitors", req.Path)
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestCreateSendsWireNamesAndReturnsServerEntity(t *testing.T) {
	c, api := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"_id":"srv-1","name":"Mary","visitingInmate":"John Doe","status":"Scheduled"}`)
	})

	got, err := c.Create(context.Background(), visit{Name: "Mary", InmateVisiting: "John Doe", Status: "Scheduled"})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", got.ID)
	assert.Equal(t, "John Doe", got.InmateVisiting)

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "John Doe", req.Body["visitingInmate"])
	_, local := req.Body["inmateVisiting"]
	assert.False(t, local, "local field name leaked onto the wire")
	_, hasID := req.Body["id"]
	assert.False(t, hasID)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestUpdateSendsFullEntity(t *testing.T) {
	c, api := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"v1","name":"Mary","visitingInmate":"John Doe","status":"Completed"}`)
	})

	got, err := c.Update(context.Background(), "v1", visit{ID: "v1", Name: "Mary", InmateVisiting: "John Doe", Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, "Completed", got.Status)

	req := api.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/visitors/v1", req.Path)
	assert.Equal(t, "Mary", req.Body["name"])
	assert.Equal(t, "Completed", req.Body["status"])
	assert.Equal(t, "v1", req.Body["id"])
}

func TestRemoveIsIdempotent(t *testing.T) {
	calls := 0
	c, api := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	require.NoError(t, c.Remove(context.Background(), "v1"))
	require.NoError(t, c.Remove(context.Background(), "v1"))
	assert.Equal(t, "/api/visitors/v1", api.last(t).Path)
	assert.Equal(t, http.MethodDelete, api.last(t).Method)
}

func TestRejectedCarriesServerMessage(t *testing.T) {
	c, _ := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"status":400,"message":"The specified inmate does not exist."}`)
	})

	_, err := c.Create(context.Background(), visit{Name: "Mary"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.False(t, errors.Is(err, ErrFetchFailed))

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
	assert.Equal(t, "create", rerr.Op)
	assert.Equal(t, "The specified inmate does not exist.", Reason(err))
}

func TestPlainTextRejection(t *testing.T) {
	c, _ := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, "Cell is already full.")
	})

	_, err := c.Create(context.Background(), visit{Name: "Mary"})
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Cell is already full.", Reason(err))
}

func TestServerErrorIsFetchFailure(t *testing.T) {
	c, _ := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestUndecodableBodyIsFetchFailure(t *testing.T) {
	c, _ := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"not":"a list"}`)
	})

	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New[visit](NewHTTP(url, time.Second, nil), Config{Path: "visitors"})
	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, "visitors", c.Name())
}

func TestMissingIDRejectedLocally(t *testing.T) {
	c, api := newVisitClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	_, err := c.Update(context.Background(), " ", visit{})
	require.ErrorIs(t, err, ErrRejected)
	require.ErrorIs(t, c.Remove(context.Background(), ""), ErrRejected)
	assert.Empty(t, api.requests)
}

type observed struct {
	mu    sync.Mutex
	codes []int
}

func (o *observed) ObserveRequest(_, _ string, code int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes = append(o.codes, code)
}

func TestObserverSeesStatus(t *testing.T) {
	obs := &observed{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	}))
	defer srv.Close()

	c := New[visit](NewHTTP(srv.URL, time.Second, nil), Config{Path: "visitors"}, WithObserver(obs))
	items, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []int{200}, obs.codes)
}

func TestFieldMapRoundTrip(t *testing.T) {
	obj := visitFields.ToWire(map[string]any{"inmateVisiting": "x", "name": "y"})
	assert.Equal(t, map[string]any{"visitingInmate": "x", "name": "y"}, obj)
	back := visitFields.FromWire(obj)
	assert.Equal(t, map[string]any{"inmateVisiting": "x", "name": "y"}, back)

	withBoth := FieldMap(nil).FromWire(map[string]any{"_id": "mongo", "id": "local"})
	assert.Equal(t, map[string]any{"id": "local"}, withBoth)
}
