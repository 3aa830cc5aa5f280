package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Supported backend model identifiers. The client treats them as
// opaque strings; validity is the remote API's concern.
const (
	ModelLlama    = "llama-3.1-8b-instant"
	ModelDeepseek = "deepseek-r1-distill-llama-70b"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// ErrEmptyPrompt is returned before any request is made.
var ErrEmptyPrompt = errors.New("prompt is required")

// Client calls the Groq chat completions API, which speaks the OpenAI
// wire format. One request per call, no conversation state between
// calls, no internal retries.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL points the client at an alternative endpoint,
// used by tests.
func NewClientWithBaseURL(apiKey string, timeout time.Duration, baseURL string) *Client {
	client := NewClient(apiKey, timeout)
	client.baseURL = strings.TrimSuffix(baseURL, "/")
	return client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends one user-role message to the named model and returns
// the first choice's text. The caller decides whether to retry.
func (c *Client) Complete(ctx context.Context, model, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("completion failed: %s: %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("completion failed: status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion response has no reply text")
	}

	return parsed.Choices[0].Message.Content, nil
}
