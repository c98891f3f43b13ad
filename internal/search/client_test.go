package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&ClientConfig{Endpoint: "http://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestClientSearch(t *testing.T) {
	var captured searchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(searchResponse{Results: []searchResult{
			{URL: "https://example.com/manual.pdf", Title: "CFB Manual", Score: 0.91, Author: "B&W"},
			{URL: "", Title: "no url, dropped"},
			{URL: "https://example.com/spec.pdf", Title: "Spec Sheet", Score: 0.42},
		}})
	}))
	defer srv.Close()

	cfg := DefaultClientConfig()
	cfg.Endpoint = srv.URL
	cfg.APIKey = "test-key"
	client, err := NewClient(cfg)
	require.NoError(t, err)

	candidates, err := client.Search(context.Background(), "CFB boiler technical manual", 5)
	require.NoError(t, err)

	assert.Equal(t, "CFB boiler technical manual filetype:pdf", captured.Query)
	assert.Equal(t, 5, captured.NumResults)

	require.Len(t, candidates, 2)
	assert.Equal(t, "https://example.com/manual.pdf", candidates[0].URL)
	assert.Equal(t, "CFB Manual", candidates[0].Title)
	assert.Equal(t, 0.91, candidates[0].Score)
	assert.Equal(t, "B&W", candidates[0].Author)
	// the raw query is kept for provenance, without the filetype hint
	assert.Equal(t, "CFB boiler technical manual", candidates[0].SourceQuery)
	assert.False(t, candidates[0].DiscoveredAt.IsZero())
}

func TestClientSearchDoesNotDoubleAnnotate(t *testing.T) {
	var captured searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	cfg := DefaultClientConfig()
	cfg.Endpoint = srv.URL
	cfg.APIKey = "k"
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "drum level filetype:pdf", 3)
	require.NoError(t, err)
	assert.Equal(t, "drum level filetype:pdf", captured.Query)
}

func TestClientSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := DefaultClientConfig()
	cfg.Endpoint = srv.URL
	cfg.APIKey = "k"
	cfg.MaxRetries = 0
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "query", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}
