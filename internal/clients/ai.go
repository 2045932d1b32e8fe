package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AIClient talks to an OpenAI-compatible chat-completion endpoint.
// The default deployment points at Groq, but anything speaking the same
// wire format works (OPENAI_BASE_URL-style override).
//
// Hints are best-effort everywhere this client is used: a failure is
// surfaced as a warning, never as a fatal error.
//
// maxTokens caps the completion length per call; a one-sentence hint
// needs far less room than a generated quiz.
type AIClient interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// defaultMaxTokens is used when a caller passes a non-positive budget.
const defaultMaxTokens = 100

type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type aiClient struct {
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
	apiKey     string
	model      string
}

func NewAIClient(cfg AIConfig, logger *zap.Logger) (AIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is not set")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("AI_MODEL is not set")
	}
	return &aiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *aiClient) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("completion endpoint returned non-200",
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("completion endpoint status %d", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
