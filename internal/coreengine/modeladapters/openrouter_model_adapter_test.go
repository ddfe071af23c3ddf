package modeladapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *OpenRouterModelAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewOpenRouterModelAdapter(OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "google/gemini-flash-1.5",
		Referer: "http://localhost",
		Title:   "Artisan Storytelling Service",
	})
	require.NoError(t, err)
	return adapter
}

func TestOpenRouterGenerate(t *testing.T) {
	var captured map[string]interface{}

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Artisan Storytelling Service", r.Header.Get("X-Title"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "{\"Title\": \"Clay Pot\"}"}}]}`))
	})

	text, err := adapter.Generate(context.Background(), "You are a storyteller.", []PromptPart{
		{Text: "Describe the product."},
		{ImageBase64: "aGVsbG8="},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"Title": "Clay Pot"}`, text)

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	userContent := messages[1].(map[string]interface{})["content"].([]interface{})
	require.Len(t, userContent, 2)
	imagePart := userContent[1].(map[string]interface{})
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=",
		imagePart["image_url"].(map[string]interface{})["url"])
}

func TestOpenRouterGenerateAPIError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "code": 429}}`))
	})

	_, err := adapter.Generate(context.Background(), "system", []PromptPart{{Text: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenRouterGenerateNonSuccessStatus(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := adapter.Generate(context.Background(), "system", []PromptPart{{Text: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestOpenRouterGenerateNoChoices(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := adapter.Generate(context.Background(), "system", []PromptPart{{Text: "hi"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewOpenRouterModelAdapterRequiresAPIKey(t *testing.T) {
	_, err := NewOpenRouterModelAdapter(OpenRouterConfig{})
	require.Error(t, err)
}
