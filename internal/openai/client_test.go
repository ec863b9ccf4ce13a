package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sermon-art-backend/internal/openai"
)

func newClient(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return openai.NewClient(openai.Options{
		BaseURL:    srv.URL,
		APIKey:     "sk-test",
		ChatModel:  "gpt-4o-mini",
		ImageModel: "dall-e-3",
		Backoffs:   []time.Duration{0, 0, 0},
	})
}

func TestChatJSON(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"fullPrompt\":\"a sunrise\"}"}}]}`))
	})

	var out struct {
		FullPrompt string `json:"fullPrompt"`
	}
	err := client.ChatJSON(context.Background(), []openai.Message{{Role: "user", Content: "hi"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a sunrise", out.FullPrompt)
}

func TestChatJSON_NonJSONContent(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"sorry"}}]}`))
	})

	var out map[string]any
	err := client.ChatJSON(context.Background(), nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode completion content")
}

func TestGenerateImage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		w.Write([]byte(`{"data":[{"url":"https://img/generated.png"}]}`))
	})

	url, err := client.GenerateImage(context.Background(), "a cross at dawn")
	require.NoError(t, err)
	assert.Equal(t, "https://img/generated.png", url)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerateImage_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"content policy"}}`))
	})

	_, err := client.GenerateImage(context.Background(), "x")
	require.Error(t, err)

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "content policy", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryWithBackoff_Exhausted(t *testing.T) {
	client := openai.NewClient(openai.Options{Backoffs: []time.Duration{0, 0, 0}})

	callCount := 0
	err := client.RetryWithBackoff(context.Background(), func() error {
		callCount++
		return &openai.APIError{StatusCode: 500}
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
	assert.Equal(t, 3, callCount)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	client := openai.NewClient(openai.Options{Backoffs: []time.Duration{time.Hour}})
	ctx, cancel := context.WithCancel(context.Background())

	callCount := 0
	err := client.RetryWithBackoff(ctx, func() error {
		callCount++
		cancel()
		return &openai.APIError{StatusCode: 429}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}
