package modeladapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Defaults for the OpenRouter chat-completions API.
const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-flash-1.5"
	defaultOpenRouterTimeout = 120 * time.Second
	defaultTemperature       = 0.7
)

// OpenRouterConfig holds configuration for the OpenRouter adapter.
type OpenRouterConfig struct {
	// APIKey is the OpenRouter API key (required).
	APIKey string
	// BaseURL overrides the API base URL. Any OpenAI-compatible endpoint works.
	BaseURL string
	// Model is the hosted model identifier (default: google/gemini-flash-1.5).
	Model string
	// Referer and Title are forwarded as the HTTP-Referer and X-Title
	// attribution headers OpenRouter expects.
	Referer string
	Title   string
	// Timeout bounds a single request (default: 120s).
	Timeout time.Duration
}

// OpenRouterModelAdapter implements GenerativeModelAdapter against the
// OpenRouter chat-completions API with multimodal message content.
type OpenRouterModelAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	referer string
	title   string
}

// chatRequest is the chat-completions request body. Message content is the
// multimodal array form: text parts and image_url parts.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenRouterModelAdapter creates a new adapter from config.
func NewOpenRouterModelAdapter(cfg OpenRouterConfig) (*OpenRouterModelAdapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultOpenRouterTimeout
	}

	return &OpenRouterModelAdapter{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		referer: cfg.Referer,
		title:   cfg.Title,
	}, nil
}

// Generate sends the system prompt and the ordered multimodal parts as a
// single chat completion and returns the model's raw text output.
func (a *OpenRouterModelAdapter) Generate(ctx context.Context, systemPrompt string, parts []PromptPart) (string, error) {
	content := make([]contentPart, 0, len(parts))
	for _, part := range parts {
		if part.ImageBase64 != "" {
			content = append(content, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: "data:image/jpeg;base64," + part.ImageBase64},
			})
			continue
		}
		content = append(content, contentPart{Type: "text", Text: part.Text})
	}

	reqBody := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: []contentPart{{Type: "text", Text: systemPrompt}}},
			{Role: "user", Content: content},
		},
		Temperature: defaultTemperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	if a.referer != "" {
		req.Header.Set("HTTP-Referer", a.referer)
	}
	if a.title != "" {
		req.Header.Set("X-Title", a.title)
	}

	startTime := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Printf("OpenRouter chat completion (model '%s') completed in %v", a.model, time.Since(startTime))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w. Body: %s", err, string(body))
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("OpenRouter API error: %s (code %d)", chatResp.Error.Message, chatResp.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API request failed with status %s: %s", resp.Status, string(body))
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("OpenRouter API returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
