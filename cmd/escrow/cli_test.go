package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pair          string
		expectedKey   string
		expectedValue string
		expectedErr   bool
	}{
		{"USD:100000", "USD", "100000", false},
		{"uluna:pool:1", "uluna", "pool:1", false},
		{"USD", "", "", true},
		{":100", "", "", true},
		{"USD:", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.pair, func(t *testing.T) {
			t.Parallel()

			key, value, err := parsePair(tt.pair)
			if tt.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expectedKey, key)
			require.Equal(t, tt.expectedValue, value)
		})
	}
}

func TestCall(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/v1/offers/unknown" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"not found"}`))
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"key":"abc"}`))
		},
	))
	defer server.Close()

	escrowDataDir = t.TempDir()
	statePath = filepath.Join(escrowDataDir, "state.json")

	_, err := getState()
	require.Error(t, err)

	require.NoError(t, setState(map[string]string{
		"rpcserver": server.URL,
		"identity":  "maker",
	}))
	require.NoError(t, setState(map[string]string{"other": "value"}))

	state, err := getState()
	require.NoError(t, err)
	require.Equal(t, server.URL, state["rpcserver"])
	require.Equal(t, "value", state["other"])

	err = call(http.MethodPost, "/v1/offers", map[string]interface{}{
		"maker": "maker",
	})
	require.NoError(t, err)
	require.Equal(t, "maker", received["maker"])

	err = call(http.MethodGet, "/v1/offers/unknown", nil)
	require.EqualError(t, err, "not found")
}
