package httpclient_test

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
)

// newTestServer creates a test server with keep-alives disabled so closing
// one server cannot affect parallel tests sharing the HTTP transport.
func newTestServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func TestDefaultClient_Get(t *testing.T) {
	t.Parallel()

	var receivedUserAgent, receivedAccept string

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUserAgent = r.Header.Get("User-Agent")
		receivedAccept = r.Header.Get("Accept")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "success"}`))
	}))
	defer server.Close()

	client := httpclient.NewDefaultClient(30 * time.Second)

	data, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, []byte(`{"message": "success"}`), data)
	assert.Equal(t, "player-catalog-server/1.0", receivedUserAgent)
	assert.Equal(t, "application/json", receivedAccept)
}

func TestDefaultClient_Get_HTTPErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "404 Not Found", statusCode: http.StatusNotFound},
		{name: "500 Internal Server Error", statusCode: http.StatusInternalServerError},
		{name: "502 Bad Gateway", statusCode: http.StatusBadGateway},
		{name: "429 Too Many Requests", statusCode: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte("nope"))
			}))
			defer server.Close()

			client := httpclient.NewDefaultClient(30 * time.Second)

			_, err := client.Get(context.Background(), server.URL)

			require.Error(t, err)

			var httpErr *httpclient.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, server.URL, httpErr.URL)
		})
	}
}

func TestDefaultClient_Get_NetworkErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		url           string
		errorContains string
	}{
		{name: "invalid URL scheme", url: "://invalid-url", errorContains: "failed to create request"},
		{name: "unreachable host", url: "http://invalid-host-does-not-exist.local:9999", errorContains: "failed to execute request"},
		{name: "empty URL", url: "", errorContains: "failed to execute request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := httpclient.NewDefaultClient(5 * time.Second)

			_, err := client.Get(context.Background(), tt.url)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestDefaultClient_Get_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := httpclient.NewDefaultClient(30 * time.Second)

	_, err := client.Get(ctx, server.URL)
	require.Error(t, err)
}

func TestNewDefaultClient_ZeroTimeoutUsesDefault(t *testing.T) {
	t.Parallel()

	client := httpclient.NewDefaultClient(0)
	require.NotNil(t, client)
}
