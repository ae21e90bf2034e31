package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/ugparu/hevcbs"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.FatalLevel)
	m.Run()
}

type fixedStats hevcbs.Stats

func (f fixedStats) Stats() hevcbs.Stats {
	return hevcbs.Stats(f)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := get(t, New(":0", nil).Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestStats(t *testing.T) {
	t.Parallel()

	src := fixedStats{Batches: 3, Units: 6, Bytes: 49, Rewinds: 1}
	rec := get(t, New(":0", src).Handler(), "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.InDelta(t, 3, body["batches"], 0)
	require.InDelta(t, 6, body["units"], 0)
	require.InDelta(t, 49, body["bytes"], 0)
	require.InDelta(t, 1, body["rewinds"], 0)
	require.Contains(t, body, "uptime")
}

func TestStatsWithoutSource(t *testing.T) {
	t.Parallel()

	rec := get(t, New(":0", nil).Handler(), "/stats")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPprofRegistered(t *testing.T) {
	t.Parallel()

	rec := get(t, New(":0", nil).Handler(), "/debug/pprof/cmdline")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStartClose(t *testing.T) {
	t.Parallel()

	s := New("127.0.0.1:0", nil)
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	// Close may land before the listener is up; both orders end Start.
	time.Sleep(20 * time.Millisecond)
	s.Close()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	require.Error(t, s.Start(), "second start")
}
