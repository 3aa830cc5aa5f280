package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClientWithBaseURL("test-key", 5*time.Second, srv.URL)
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hello"}},
			},
		})
	})

	reply, err := client.Complete(context.Background(), ModelLlama, "hi")
	require.NoError(t, err)
	require.Equal(t, "hello", reply)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, ModelLlama, gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	require.Equal(t, "user", gotBody.Messages[0].Role)
	require.Equal(t, "hi", gotBody.Messages[0].Content)
}

func TestCompleteEmptyPrompt(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.Complete(context.Background(), ModelLlama, "   ")
	require.ErrorIs(t, err, ErrEmptyPrompt)
	require.Zero(t, calls)
}

func TestCompleteAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error"},
		})
	})

	_, err := client.Complete(context.Background(), ModelDeepseek, "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid api key")
}

func TestCompleteNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.Complete(context.Background(), ModelDeepseek, "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no reply text")
}

func TestCompleteMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Complete(context.Background(), ModelDeepseek, "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode completion response")
}
