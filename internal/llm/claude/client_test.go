package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotReq request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(response{
			Content: []contentBlock{{Type: "text", Text: "  Heavy rain in Tokyo  "}},
		})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})

	got, err := c.Translate(context.Background(), "東京で大雨", "English")
	require.NoError(t, err)
	assert.Equal(t, "Heavy rain in Tokyo", got)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "English")
	assert.Contains(t, gotReq.Messages[0].Content, "東京で大雨")
}

func TestTranslate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := c.Translate(context.Background(), "地震", "English")
	assert.Error(t, err)
}

func TestTranslate_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(response{})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := c.Translate(context.Background(), "地震", "English")
	assert.Error(t, err)
}

func TestTranslate_Disabled(t *testing.T) {
	c := New(Config{})
	assert.False(t, c.Enabled())

	_, err := c.Translate(context.Background(), "地震", "English")
	assert.Error(t, err)
}
