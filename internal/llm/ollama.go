package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GenerateRequest is the body of Ollama's /api/chat.
type GenerateRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// OllamaProvider answers through a local Ollama server. It is available only
// when a server URL is configured.
type OllamaProvider struct {
	client *http.Client
	url    string
	model  string
}

func NewOllamaProvider(url, model string) *OllamaProvider {
	return &OllamaProvider{
		client: &http.Client{},
		url:    strings.TrimRight(url, "/"),
		model:  model,
	}
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Available() bool { return p.url != "" }

// APIKeyConfigured reports whether the server is configured; Ollama has no keys.
func (p *OllamaProvider) APIKeyConfigured() bool { return p.url != "" }

func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("ollama server URL is not configured")
	}

	body, err := json.Marshal(&GenerateRequest{
		Model: p.model,
		Messages: []Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	return chatResp.Message.Content, nil
}
