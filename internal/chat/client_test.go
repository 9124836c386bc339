package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/femora/internal/config"
	"github.com/terraincognita07/femora/internal/logger"
)

func testChatConfig(url string) config.ChatConfig {
	return config.ChatConfig{
		APIKey:  "test-key",
		URL:     url,
		Model:   "command",
		Timeout: 5 * time.Second,
	}
}

func TestClientReplyFormatsCompletion(t *testing.T) {
	var received completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"Intro\n1. rest"}`))
	}))
	defer server.Close()

	client := NewClient(testChatConfig(server.URL), logger.NewNop())

	reply := client.Reply(context.Background(), "How do I ease cramps?")

	assert.Equal(t, "Intro\n• 1. rest", reply)
	assert.Equal(t, "How do I ease cramps?", received.Message)
	assert.Equal(t, "command", received.Model)
	assert.Contains(t, received.Preamble, "You are Luna")
	assert.False(t, received.Stream)
}

func TestClientReplyFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "server error", status: http.StatusInternalServerError, payload: `{"message":"boom"}`},
		{name: "unauthorized", status: http.StatusUnauthorized, payload: `{"message":"invalid api token"}`},
		{name: "empty text", status: http.StatusOK, payload: `{"text":"   "}`},
		{name: "malformed body", status: http.StatusOK, payload: `not json`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.payload))
			}))
			defer server.Close()

			reply := NewClient(testChatConfig(server.URL), logger.NewNop()).Reply(context.Background(), "hi")
			assert.Equal(t, FallbackReply, reply)
		})
	}
}

func TestClientReplyWithoutAPIKeySkipsUpstream(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	cfg := testChatConfig(server.URL)
	cfg.APIKey = ""

	reply := NewClient(cfg, logger.NewNop()).Reply(context.Background(), "hi")

	assert.Equal(t, FallbackReply, reply)
	assert.Zero(t, hits.Load())
}

func TestClientBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testChatConfig(server.URL), logger.NewNop(), WithBreaker(NewBreaker("test-breaker")))

	for range 8 {
		require.Equal(t, FallbackReply, client.Reply(context.Background(), "hi"))
	}
	assert.Equal(t, int32(6), hits.Load())
}
