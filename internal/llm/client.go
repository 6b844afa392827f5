package llm

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
)

// Client is a client for an OpenAI-compatible chat completions API
// (Groq serves the same wire format under /openai/v1).
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new completion client. The timeout is a hard bound on
// the whole exchange; a call that exceeds it resolves to FailureTimeout.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float32   `json:"top_p"`
}

// ChatChoiceMessage represents the message in a chat choice.
type ChatChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int               `json:"index"`
	Message      ChatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// ChatUsage represents the token usage block of the chat response.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

// Complete sends a single chat completion request and classifies the result.
// It never retries; each invocation is exactly one outbound call.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) Outcome {
	url := fmt.Sprintf("%s/openai/v1/chat/completions", c.BaseURL)

	model := req.Model
	if model == "" {
		model = c.Model
	}

	payload := ChatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(FailureAPI, "failed to marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return failure(FailureAPI, "failed to create request: %v", err)
	}

	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return failure(FailureTimeout, "completion request timed out: %v", err)
		}
		return failure(FailureNetwork, "failed to reach completion endpoint: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode below
	case http.StatusUnauthorized, http.StatusForbidden:
		return failure(FailureAuth, "provider rejected credentials: status %d", resp.StatusCode)
	case http.StatusTooManyRequests:
		return failure(FailureRateLimited, "provider rate limit exceeded: status %d", resp.StatusCode)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return failure(FailureAPI, "bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return failure(FailureAPI, "failed to decode response: %v", err)
	}

	if len(chatResp.Choices) == 0 {
		return failure(FailureAPI, "no choices returned")
	}
	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return failure(FailureAPI, "empty message content in first choice")
	}

	return success(content, chatResp.Usage.TotalTokens)
}

// isTimeout distinguishes an elapsed deadline from other transport errors.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
