package services

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

	"neuratek-relay/internal/models"
)

// CompletionClient sends an assembled conversation to a chat-completion
// API and returns the reply text.
type CompletionClient interface {
	Complete(ctx context.Context, messages []models.Message, maxTokens int, temperature float64) (string, error)
}

// AzureOpenAIClient talks to an Azure OpenAI chat-completion deployment
// over plain HTTP.
type AzureOpenAIClient struct {
	endpoint   string
	apiKey     string
	apiVersion string
	deployment string
	httpClient *http.Client
}

func NewAzureOpenAIClient(endpoint, apiKey, apiVersion, deployment string) *AzureOpenAIClient {
	return &AzureOpenAIClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		apiVersion: apiVersion,
		deployment: deployment,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type completionRequest struct {
	Messages    []models.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message models.Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete performs a single chat-completion call and returns the first
// choice's content with surrounding whitespace stripped. Exactly one
// attempt is made; any failure is returned to the caller as-is.
func (c *AzureOpenAIClient) Complete(ctx context.Context, messages []models.Message, maxTokens int, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigError{Message: "AZURE_OPENAI_KEY no está configurada"}
	}

	body, err := json.Marshal(completionRequest{
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}

	// Azure reports auth and quota failures as an error object, usually
	// alongside a non-2xx status.
	if parsed.Error != nil {
		return "", &UpstreamError{Err: fmt.Errorf("API error %s: %s", parsed.Error.Code, parsed.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Err: fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}
	if len(parsed.Choices) == 0 {
		return "", &UpstreamError{Err: errors.New("no response choices")}
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
