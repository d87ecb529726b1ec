package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "Hype this show", req.Messages[1].Content)
		assert.Equal(t, 120, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "It will be electric."}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.Client(), srv.URL, "test-key")
	reply, err := c.Complete(context.Background(), "You write concert blurbs.", "Hype this show", 120)
	require.NoError(t, err)
	assert.Equal(t, "It will be electric.", reply)
}

func TestHTTPClient_Complete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.Client(), srv.URL, "bad-key")
	_, err := c.Complete(context.Background(), "", "hello", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestHTTPClient_Complete_NoKey(t *testing.T) {
	c := NewHTTPClient(nil, "", "")
	_, err := c.Complete(context.Background(), "", "hello", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestHTTPClient_Complete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.Client(), srv.URL, "test-key")
	_, err := c.Complete(context.Background(), "", "hello", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
