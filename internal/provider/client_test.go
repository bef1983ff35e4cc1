package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/player-catalog-server/internal/httpclient"
	"github.com/scoutline/player-catalog-server/internal/provider"
)

func newProvider(t *testing.T, handler http.HandlerFunc) (*provider.HTTPProvider, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	t.Cleanup(server.Close)

	client := httpclient.NewDefaultClient(5 * time.Second)
	return provider.NewHTTPProvider(client, server.URL), server
}

func TestHTTPProvider_ListClubPlayers(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clubs/5/players", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"players": [
				{"id": "182906", "name": "Mike Maignan", "position": "Goalkeeper"},
				{"id": "199976", "name": "Marco Sportiello", "position": "Goalkeeper"}
			]
		}`))
	})

	players, err := p.ListClubPlayers(context.Background(), "5")

	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "182906", players[0].ID)
	assert.Equal(t, "Mike Maignan", players[0].Name)
	assert.Empty(t, players[0].ClubID, "roster payloads carry no club id")
	assert.Equal(t, "199976", players[1].ID)
}

func TestHTTPProvider_ListClubPlayers_EmptyRoster(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"players": []}`))
	})

	players, err := p.ListClubPlayers(context.Background(), "5")

	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestHTTPProvider_ListClubPlayers_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		handler       http.HandlerFunc
		errorContains string
	}{
		{
			name: "provider error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			errorContains: "failed to fetch players for club 5",
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"players": `))
			},
			errorContains: "failed to parse players for club 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, _ := newProvider(t, tt.handler)

			_, err := p.ListClubPlayers(context.Background(), "5")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestHTTPProvider_GetActiveStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{name: "retired player is inactive", body: `{"isRetired": true}`, expected: false},
		{name: "unretired player is active", body: `{"isRetired": false}`, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/players/182906/profile", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			})

			active, err := p.GetActiveStatus(context.Background(), "182906")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, active)
		})
	}
}

func TestHTTPProvider_GetActiveStatus_MissingFlag(t *testing.T) {
	t.Parallel()

	p, _ := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := p.GetActiveStatus(context.Background(), "182906")

	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrActiveStatusUnavailable)
	assert.Contains(t, err.Error(), "182906")
}

func TestHTTPProvider_GetActiveStatus_ProviderError(t *testing.T) {
	t.Parallel()

	p, server := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := p.GetActiveStatus(context.Background(), "182906")

	require.Error(t, err)

	var httpErr *httpclient.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, server.URL+"/players/182906/profile", httpErr.URL)
}

func TestNewHTTPProvider_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	var requestedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"players": []}`))
	}))
	server.Config.SetKeepAlivesEnabled(false)
	t.Cleanup(server.Close)

	p := provider.NewHTTPProvider(httpclient.NewDefaultClient(5*time.Second), server.URL+"/")

	_, err := p.ListClubPlayers(context.Background(), "5")

	require.NoError(t, err)
	assert.Equal(t, "/clubs/5/players", requestedPath)
}
