package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/steven0413/BiblioteEmail/config"
)

// Oracle is a black-box text-completion service. The pipeline treats it
// as a nondeterministic collaborator, so everything downstream of a
// completion must be defensive about the reply format.
type Oracle interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OracleClient calls an OpenAI-compatible chat-completions endpoint.
type OracleClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewOracleClient builds an oracle client from the app configuration.
func NewOracleClient(cfg config.Config) *OracleClient {
	return &OracleClient{
		baseURL:     cfg.Oracle.BaseURL,
		apiKey:      cfg.Oracle.APIKey,
		model:       cfg.Oracle.Model,
		temperature: cfg.Oracle.Temperature,
		maxTokens:   cfg.Oracle.MaxTokens,
		client:      NewHTTPClient(),
	}
}

// Complete sends a system and user instruction pair and returns the raw
// reply text of the first choice.
func (o *OracleClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("oracle: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("oracle: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle: http call failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oracle: unexpected status %d", resp.StatusCode)
	}
	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("oracle: decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("oracle: empty choices")
	}
	return chat.Choices[0].Message.Content, nil
}
