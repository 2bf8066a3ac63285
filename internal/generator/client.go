package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

// ErrNoAPIKey is returned by NewClient when no credential is supplied.
var ErrNoAPIKey = errors.New("API key not configured")

// ErrEmptyContent is returned when the API answered but produced no text.
var ErrEmptyContent = errors.New("generator returned empty content")

// Client talks to an OpenAI- or Anthropic-shaped chat completions API. All
// requests pass through a token-bucket rate limiter and a bounded retry
// loop with linear backoff.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
	apiType    string // "anthropic" or "openai"
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithRetry sets the maximum number of retries per request.
func WithRetry(maxRetries int) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		transport := c.httpClient.Transport
		c.httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport,
		}
	}
}

// WithRateLimit caps the request rate.
func WithRateLimit(requestsPerMinute, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
	}
}

// WithAPIConfig sets the endpoint and default model. The API dialect is
// inferred from the base URL.
func WithAPIConfig(baseURL, model string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
		c.model = model
		if strings.Contains(baseURL, "openai") {
			c.apiType = "openai"
		} else {
			c.apiType = "anthropic"
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a generator client. The credential is required up
// front: a missing key fails construction, not the first request.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com/v1",
		model:   "gpt-4",
		httpClient: &http.Client{
			Timeout:   120 * time.Second,
			Transport: transport,
		},
		maxRetries: 3,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		apiType:    "openai",
		logger:     slog.Default().With("component", "generator"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("generator client initialized",
		"api_type", c.apiType,
		"base_url", c.baseURL,
		"model", c.model,
		"max_retries", c.maxRetries)

	return c, nil
}

type request struct {
	system    string
	prompt    string
	settings  novel.WritingSettings
	forceJSON bool
}

func (c *Client) complete(ctx context.Context, req request) (string, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		response, err := c.doRequest(ctx, req)
		if err == nil {
			c.logger.Debug("generation request succeeded",
				"attempt", attempt,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_length", len(response))
			if strings.TrimSpace(response) == "" {
				return "", ErrEmptyContent
			}
			return response, nil
		}

		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		c.logger.Warn("generation request failed, will retry",
			"attempt", attempt,
			"error", err)
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doRequest(ctx context.Context, req request) (string, error) {
	if c.apiType == "openai" {
		return c.doOpenAIRequest(ctx, req)
	}
	return c.doAnthropicRequest(ctx, req)
}

func (c *Client) pickModel(s novel.WritingSettings) string {
	if s.Model != "" {
		return s.Model
	}
	return c.model
}

func (c *Client) maxTokens(s novel.WritingSettings) int {
	if s.MaxTokens > 0 {
		return s.MaxTokens
	}
	return 4096
}

func (c *Client) doOpenAIRequest(ctx context.Context, req request) (string, error) {
	messages := []map[string]string{}
	if req.system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.prompt})

	body := map[string]any{
		"model":       c.pickModel(req.settings),
		"messages":    messages,
		"max_tokens":  c.maxTokens(req.settings),
		"temperature": req.settings.Temperature,
	}
	if req.forceJSON {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	c.logger.Debug("openai request completed",
		"total_tokens", response.Usage.TotalTokens,
		"response_length", len(response.Choices[0].Message.Content))

	return response.Choices[0].Message.Content, nil
}

func (c *Client) doAnthropicRequest(ctx context.Context, req request) (string, error) {
	body := map[string]any{
		"model": c.pickModel(req.settings),
		"messages": []map[string]string{
			{"role": "user", "content": req.prompt},
		},
		"max_tokens":  c.maxTokens(req.settings),
		"temperature": req.settings.Temperature,
	}
	system := req.system
	if req.forceJSON {
		if system != "" {
			system += "\n\n"
		}
		system += "Respond with valid JSON only. Do not include markdown formatting, explanations, or any text outside of the JSON object."
	}
	if system != "" {
		body["system"] = system
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	return response.Content[0].Text, nil
}
