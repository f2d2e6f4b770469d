package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/plutovoice/go-pluto/internal/httpc"
)

const providerClient = "client"

// Client talks to an OpenAI-compatible chat completion API over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

var _ Provider = (*Client)(nil)

// NewClient creates a client with the given options.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		config:  cfg,
		http:    httpClient,
		logger:  cfg.Logger,
	}, nil
}

// Chat sends a chat completion request.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	body, err := c.post(ctx, "/chat/completions", c.buildChatPayload(req))
	if err != nil {
		return nil, err
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, WrapError(providerClient, "chat", fmt.Errorf("decode response: %w", err))
	}

	if len(completion.Choices) == 0 {
		return nil, WrapError(providerClient, "chat", fmt.Errorf("no choices in response"))
	}

	choice := completion.Choices[0]
	return &ChatResponse{
		Message:      NewAssistantMessage(choice.Message.Content),
		FinishReason: choice.FinishReason,
		Usage: Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
		Model:     completion.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// ListModels returns the model IDs the endpoint currently serves.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/models")
	if err != nil {
		return nil, err
	}

	var list modelListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, WrapError(providerClient, "models", fmt.Errorf("decode response: %w", err))
	}

	ids := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// Capabilities returns what this client supports.
func (c *Client) Capabilities() Capabilities {
	return Capabilities{Chat: true, Models: true}
}

// Health checks that the endpoint answers a model listing.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return nil
}

func (c *Client) buildChatPayload(req *ChatRequest) map[string]interface{} {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}

	payload := map[string]interface{}{
		"model":    model,
		"messages": req.Messages,
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	if maxTokens > 0 {
		payload["max_tokens"] = maxTokens
	}

	if req.Temperature > 0 {
		payload["temperature"] = req.Temperature
	} else if c.config.Temperature > 0 {
		payload["temperature"] = c.config.Temperature
	}

	if req.TopP > 0 {
		payload["top_p"] = req.TopP
	}
	if len(req.Stop) > 0 {
		payload["stop"] = req.Stop
	}

	return payload
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(providerClient, "encode", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, WrapError(providerClient, "request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.doWithRetry(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, WrapError(providerClient, "request", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.doWithRetry(req)
}

// doWithRetry sends the request, retrying rate limits, server errors, and
// transport failures with linear backoff. Non-retryable API errors return
// immediately.
func (c *Client) doWithRetry(req *http.Request) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.config.RetryDelay
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "error", lastErr)

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(delay):
			}

			// Do consumes the body, so restore it before resending.
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, WrapError(providerClient, "retry", err)
				}
				req.Body = body
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		apiErr := c.parseError(resp.StatusCode, body)
		if !apiErr.IsRetryable() {
			return nil, apiErr
		}
		lastErr = apiErr
	}

	return nil, WrapError(providerClient, "request", lastErr)
}

func (c *Client) parseError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Provider:   providerClient,
	}

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		apiErr.Message = errResp.Error.Message
		apiErr.Code = errResp.Error.Code
	}

	return apiErr
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type modelListResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}
