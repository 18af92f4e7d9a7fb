package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"piiguard/internal/config"
	"piiguard/internal/domain"
	"piiguard/internal/llm"
	"piiguard/internal/port"
)

const (
	providerName   = "ollama"
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "gemma3:4b"
)

// Client implements port.ChatModel against the Ollama native chat API.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates an Ollama chat client from the LLM config.
func NewClient(cfg *config.LLMConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// Factory adapts NewClient to llm.ProviderFactory.
func Factory(cfg *config.LLMConfig) (port.ChatModel, error) {
	return NewClient(cfg), nil
}

func (c *Client) Name() string {
	return providerName + "/" + c.model
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
	Options  chatOptions          `json:"options"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

func (c *Client) Chat(ctx context.Context, req port.ChatRequest) (*port.ChatResponse, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: req.Messages,
		Stream:   false,
		Options:  chatOptions{Temperature: 0},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling ollama API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := &llm.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: string(respBody)}
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := llm.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, llm.NewRateLimitError(providerName, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseChatResponse(respBody, c.model)
}

func parseChatResponse(body []byte, model string) (*port.ChatResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w (raw: %s)", err, llm.Truncate(string(body), 500))
	}

	out := &port.ChatResponse{Raw: string(body), ModelUsed: model}
	if resp.Model != "" {
		out.ModelUsed = resp.Model
	}
	if resp.Message != nil && resp.Message.Content != nil {
		out.Content = *resp.Message.Content
		out.HasContent = true
	}
	return out, nil
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// Validate checks that the Ollama server is reachable and has the configured
// model pulled.
func (c *Client) Validate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("connecting to ollama at %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &llm.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return fmt.Errorf("unmarshaling model list: %w", err)
	}
	for _, m := range tags.Models {
		if modelMatches(c.model, m.Name) || modelMatches(c.model, m.Model) {
			return nil
		}
	}
	return fmt.Errorf("model %q not found on ollama server; run `ollama pull %s`", c.model, c.model)
}

// modelMatches treats an untagged model name as ":latest".
func modelMatches(want, have string) bool {
	if have == "" {
		return false
	}
	if want == have {
		return true
	}
	return !strings.Contains(want, ":") && want+":latest" == have
}
