// Package chat forwards free-text questions to a hosted text-completion API
// and turns the reply into display-ready text. Upstream calls run through a
// circuit breaker; every failure degrades to a fixed fallback reply.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/terraincognita07/femora/internal/config"
	"github.com/terraincognita07/femora/internal/logger"
)

const FallbackReply = "I'm here to help you with your health and wellness questions. Could you please rephrase that?"

const assistantPreamble = `You are Luna, a friendly and knowledgeable AI health assistant specializing in menstrual health and women's wellness.
When providing information, always structure your responses with:
1. Clear headings for each section
2. Bullet points for lists
3. Short, easy-to-read paragraphs
4. Emojis for visual appeal
5. Proper spacing between sections

Remember to be empathetic and supportive while maintaining a professional tone.`

const maxErrorBodyBytes = 512

type completionRequest struct {
	Message          string  `json:"message"`
	Model            string  `json:"model"`
	Temperature      float64 `json:"temperature"`
	Preamble         string  `json:"preamble"`
	Stream           bool    `json:"stream"`
	PromptTruncation string  `json:"prompt_truncation"`
}

type completionResponse struct {
	Text string `json:"text"`
}

type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
	endpoint   string
	apiKey     string
	model      string
	logger     *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

func WithBreaker(breaker *gobreaker.CircuitBreaker[string]) Option {
	return func(client *Client) {
		client.breaker = breaker
	}
}

func NewClient(cfg config.ChatConfig, log *logger.Logger, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    NewBreaker("chat-completion"),
		endpoint:   cfg.URL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		logger:     log,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewBreaker trips after six consecutive upstream failures and probes again
// after thirty seconds.
func NewBreaker(name string) *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
}

// Reply never fails: upstream errors, an open breaker, a missing API key and
// empty completions all yield FallbackReply.
func (client *Client) Reply(ctx context.Context, message string) string {
	if client.apiKey == "" {
		client.logger.Debug("chat api key not configured")
		return FallbackReply
	}

	text, err := client.breaker.Execute(func() (string, error) {
		return client.complete(ctx, message)
	})
	if err != nil {
		client.logger.Warn("chat completion failed", "error", err, "breaker_state", client.breaker.State().String())
		return FallbackReply
	}
	if strings.TrimSpace(text) == "" {
		return FallbackReply
	}
	return FormatReply(text)
}

func (client *Client) complete(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Message:          message,
		Model:            client.model,
		Temperature:      0.7,
		Preamble:         assistantPreamble,
		Stream:           false,
		PromptTruncation: "AUTO",
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+client.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("send completion request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		return "", fmt.Errorf("completion upstream returned %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded completionResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	return decoded.Text, nil
}
