package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics

	m.RecordRequest(http.MethodGet, "/api/v1/players", http.StatusOK, time.Millisecond)
	m.RecordSyncRun("5", time.Second, 1, 2, nil)
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest(http.MethodGet, "/api/v1/players", http.StatusOK, 5*time.Millisecond)
	m.RecordSyncRun("5", time.Second, 3, 2, nil)
	m.RecordSyncRun("5", time.Second, 0, 0, errors.New("provider down"))

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()

	assert.Contains(t, body, `player_catalog_http_requests_total{code="200",method="GET",route="/api/v1/players"} 1`)
	assert.Contains(t, body, `player_catalog_sync_runs_total{club="5",outcome="success"} 1`)
	assert.Contains(t, body, `player_catalog_sync_runs_total{club="5",outcome="failure"} 1`)
	assert.Contains(t, body, `player_catalog_players_merged_total{club="5",kind="inserted"} 3`)
	assert.Contains(t, body, `player_catalog_players_merged_total{club="5",kind="modified"} 2`)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	m := NewMetrics()

	router := chi.NewRouter()
	router.Use(Middleware(m))
	router.Get("/players/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/players/182906", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, recorder.Body.String(),
		`player_catalog_http_requests_total{code="200",method="GET",route="/players/{id}"} 1`)
}
