package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herd/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.WhatsAppConfig{
		AccessToken:   "token",
		PhoneNumberID: "12345",
		BaseURL:       srv.URL + "/",
		APIVersion:    "v19.0",
	})
}

func TestSendTextMessage(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v19.0/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	})

	resp, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "66800000000", Body: "hello"})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "wamid.1", resp.Messages[0].ID)

	assert.Equal(t, "whatsapp", got["messaging_product"])
	assert.Equal(t, "66800000000", got["to"])
	assert.Equal(t, map[string]any{"body": "hello", "preview_url": false}, got["text"])
}

func TestSendTextMessageAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100,"fbtrace_id":"abc"}}`))
	})

	_, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "x", Body: "hi"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 100, apiErr.Code)
	assert.Equal(t, "Invalid parameter", apiErr.Message)
	assert.Equal(t, "abc", apiErr.FBTraceID)
}

func TestSendTextMessageRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.2"}]}`))
	})

	resp, err := c.SendTextMessage(context.Background(), SendTextMessageRequest{To: "x", Body: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "wamid.2", resp.Messages[0].ID)
	assert.Equal(t, int32(3), calls.Load())
}
