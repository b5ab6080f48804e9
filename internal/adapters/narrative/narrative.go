// Package narrative calls an OpenAI-style chat-completions service to
// phrase team recommendations. Every failure mode maps to a sentinel
// error so callers can fall back to locally derived recommendations.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/teampulse/pulse/pkg/metrics"
)

// Defaults mirror what the reporting tool's narrative service expects.
const (
	defaultModel      = "o4-mini-2025-04-16"
	defaultMaxTokens  = 600
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 1

	dialTimeout       = 5 * time.Second
	availProbeTimeout = 2 * time.Second

	completionsPath = "/v1/chat/completions"
	modelsPath      = "/v1/models"
)

// Client talks to one chat-completions endpoint. It is safe for
// concurrent use.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	maxTokens  int
	timeout    time.Duration
	maxRetries int
	http       *http.Client
	observer   Observer
}

// NewClient creates a narrative client for the given endpoint base URL.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		model:      defaultModel,
		maxTokens:  defaultMaxTokens,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: dialTimeout,
				}).DialContext,
			},
		},
		observer: NoopObserver{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_completion_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the digest as a single user message and returns the
// raw response text. Transport failures and bad statuses are retried a
// bounded number of times; a response that does not carry text is
// malformed and returned immediately.
func (c *Client) Generate(ctx context.Context, digest string) (string, error) {
	start := time.Now()
	metrics.RecordNarrativeRequest()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: digest}},
		MaxTokens: c.maxTokens,
	}

	var lastErr error
	attempts := 1 + c.maxRetries
	for i := 0; i < attempts; i++ {
		content, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			metrics.RecordNarrativeLatency(float64(latency))
			c.observer.OnCallComplete(CallEvent{
				Model:     c.model,
				LatencyMs: latency,
				Success:   true,
			})
			return content, nil
		}
		lastErr = err

		// A response that decoded but violates the contract will not
		// get better on retry.
		if errors.Is(err, ErrMalformedResponse) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	metrics.RecordNarrativeLatency(float64(latency))
	metrics.RecordNarrativeFailure()

	err := classify(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		Model:     c.model,
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return "", err
}

func (c *Client) doRequest(ctx context.Context, body chatRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.endpoint + completionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narrative service returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no completion text", ErrMalformedResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

// Available probes the service without sending a generation request.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, availProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+modelsPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrMalformedResponse):
		return err
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
