package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ProviderError wraps any failure talking to the embedding provider:
// transport errors, non-2xx statuses and malformed responses. Callers
// treat it as a signal to fall back to lexical matching, never as fatal.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("embedding provider returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("embedding provider request failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Client talks to an OpenAI-style embeddings endpoint.
type Client struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewClient builds a client from environment variables. The API key comes
// from EMBEDDING_API_KEY or, for Docker secrets, EMBEDDING_API_KEY_FILE.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("EMBEDDING_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("EMBEDDING_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("EMBEDDING_API_KEY or EMBEDDING_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("EMBEDDING_API_URL")
	if apiURL == "" {
		apiURL = "https://api.x.ai/v1/embeddings"
	}

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = "grok-4"
	}

	return &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed requests an embedding vector for text. Every failure is returned
// as a *ProviderError.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: c.model, Input: text})
	if err != nil {
		return nil, &ProviderError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, &ProviderError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(msg))),
		}
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ProviderError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, &ProviderError{Err: fmt.Errorf("response contained no embedding")}
	}

	return parsed.Data[0].Embedding, nil
}
