package modeladapters

import (
	"context"
	"log"
)

// MockModelAdapter is a mock implementation of GenerativeModelAdapter for
// local development and the test suite.
type MockModelAdapter struct {
	// Response is returned verbatim from Generate when set.
	Response string
	// Err simulates a transport/status failure when set.
	Err error
}

// Generate returns the configured canned response.
func (m *MockModelAdapter) Generate(_ context.Context, systemPrompt string, parts []PromptPart) (string, error) {
	log.Printf("MockModelAdapter: Generate called with %d prompt parts", len(parts))
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "```json\n{\"Title\": \"Mock Product\", \"Category\": \"Pottery\", \"Tagline\": \"Generated by the mock adapter\"}\n```", nil
}
