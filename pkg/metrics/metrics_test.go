package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("cells", "list", 200, 15*time.Millisecond)
	m.ObserveRequest("cells", "list", 200, 5*time.Millisecond)
	m.ObserveRequest("cells", "create", 409, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("cells", "list", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("cells", "create", "409")))
}

func TestObserveOperationOutcome(t *testing.T) {
	m := New()
	m.ObserveOperation("inmates", "add", nil)
	m.ObserveOperation("inmates", "add", errors.New("boom"))
	m.ObserveOperation("inmates", "add", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("inmates", "add", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("inmates", "add", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("cells", "list", 200, time.Millisecond)
	m.ObserveOperation("cells", "list", nil)
	m.ObserveNotification("error")
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveNotification("success")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `warden_notify_notifications_total{severity="success"} 1`))
}
