package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/scoutline/player-catalog-server/internal/api"
	"github.com/scoutline/player-catalog-server/internal/service/mocks"
	"github.com/scoutline/player-catalog-server/internal/store"
	"github.com/scoutline/player-catalog-server/internal/telemetry"
)

func TestNewServer_MountsHealthAndAPIRoutes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPlayerService(ctrl)
	svc.EXPECT().GetPlayers(gomock.Any(), gomock.Any(), gomock.Any()).Return(&store.PlayerPage{}, nil)

	server := api.NewServer(svc)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/players", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestNewServer_WithMetricsHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPlayerService(ctrl)

	metrics := telemetry.NewMetrics()
	server := api.NewServer(svc,
		api.WithMiddlewares(telemetry.Middleware(metrics), api.LoggingMiddleware),
		api.WithMetricsHandler(metrics.Handler()),
	)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Contains(t, recorder.Body.String(),
		`player_catalog_http_requests_total{code="200",method="GET",route="/health"} 1`)
}
