package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlakyServer(t *testing.T, failures int, text string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= failures {
			http.Error(w, "upstream hiccup", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(baseURL string) *Client {
	c := NewClient(Config{APIKey: "k", Model: "gemini-test", BaseURL: baseURL})
	c.retryDelay = time.Millisecond
	return c
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	srv, calls := newFlakyServer(t, 2, "伯方島へようこそ。")
	client := newTestClient(srv.URL)

	text, err := client.Generate(context.Background(), "system", "おすすめは？")
	require.NoError(t, err)
	assert.Equal(t, "伯方島へようこそ。", text)
	assert.Equal(t, 3, *calls)
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	srv, calls := newFlakyServer(t, 10, "")
	client := newTestClient(srv.URL)

	_, err := client.Generate(context.Background(), "", "prompt")
	assert.Error(t, err)
	assert.Equal(t, maxAttempts, *calls)
}

func TestGenerateSendsSystemInstruction(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "you are Terra's assistant", "hi")
	require.NoError(t, err)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "you are Terra's assistant", got.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "hi", got.Contents[0].Parts[0].Text)
}

func TestGenerateRejectsEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "", "hi")
	assert.ErrorContains(t, err, "empty candidates")
}
