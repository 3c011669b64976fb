package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"nombre":"Juan Carlos Perez Gomez","area":"Sistemas"}]`))
	}))
	defer server.Close()

	entries, err := NewClient(server.URL).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "Juan Carlos Perez Gomez", entries[0].Name)
	assert.Equal(t, "Sistemas", entries[0].Area)
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchNoURL(t *testing.T) {
	_, err := NewClient("").Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A canceled context stops the retry loop instead of backing off.
	_, err := NewClient(server.URL).Fetch(ctx)
	assert.Error(t, err)
}
