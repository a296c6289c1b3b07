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

	"memescore/internal/util"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	// Sampling settings are fixed for the analyzer.
	Temperature = 0.7
	MaxTokens   = 500

	defaultMaxResponseBytes = 1 << 20
)

// ErrNoCredential is returned by New when no API key is configured.
var ErrNoCredential = errors.New("llm: no api key configured")

// Config selects and configures the text generation backend.
type Config struct {
	Provider     string // "openai" or "none"
	Model        string
	APIKey       string
	BaseURL      string
	SystemPrompt string
	Timeout      time.Duration
}

// New builds the generator for cfg. A missing key or provider "none" yields
// ErrNoCredential, which callers treat as "run without a provider".
func New(cfg Config) (*OpenAI, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "none":
		return nil, ErrNoCredential
	case "", "openai":
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoCredential
	}
	return NewOpenAI(cfg), nil
}

// OpenAI calls the Chat Completions API.
type OpenAI struct {
	client           *http.Client
	apiKey           string
	baseURL          string
	model            string
	systemPrompt     string
	maxResponseBytes int64
}

func NewOpenAI(cfg Config) *OpenAI {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAI{
		client:           &http.Client{Timeout: timeout},
		apiKey:           cfg.APIKey,
		baseURL:          baseURL,
		model:            model,
		systemPrompt:     cfg.SystemPrompt,
		maxResponseBytes: defaultMaxResponseBytes,
	}
}

// Model returns the configured model identifier.
func (p *OpenAI) Model() string { return p.model }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate sends one system + user message pair and returns the first choice.
func (p *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if p.systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: p.systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, p.maxResponseBytes+1))
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}
	if int64(len(respBody)) > p.maxResponseBytes {
		return "", fmt.Errorf("openai: response exceeded limit (%d bytes)", p.maxResponseBytes)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody errorResponse
		if err := json.Unmarshal(respBody, &errBody); err == nil && errBody.Error.Message != "" {
			return "", fmt.Errorf("openai: status %d: %s (type=%s)", resp.StatusCode, errBody.Error.Message, errBody.Error.Type)
		}
		return "", fmt.Errorf("openai: unexpected status %s: %s", resp.Status, util.TruncateRunes(strings.TrimSpace(string(respBody)), 200))
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openai: response had no choices")
	}
	return out.Choices[0].Message.Content, nil
}
