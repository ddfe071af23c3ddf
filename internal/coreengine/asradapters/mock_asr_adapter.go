package asradapters

import (
	"context"
	"fmt"
	"log"
)

// MockASRAdapter is a mock implementation of the ASRAdapter interface.
type MockASRAdapter struct {
	// Transcript is returned verbatim when set.
	Transcript string
	// Err simulates a vendor failure when set.
	Err error
}

// Recognize simulates a transcription.
func (m *MockASRAdapter) Recognize(_ context.Context, audioObjectName string, languageCode string) (string, string, error) {
	log.Printf("MockASRAdapter: Recognize called for audio file '%s', language '%s'", audioObjectName, languageCode)

	if m.Err != nil {
		return "", fmt.Sprintf(`{"error": "%s"}`, m.Err.Error()), m.Err
	}

	text := m.Transcript
	if text == "" {
		text = fmt.Sprintf("Mock transcription for %s in language %s.", audioObjectName, languageCode)
	}
	rawResponse := fmt.Sprintf(`{"transcription": %q, "confidence": 0.95, "simulated": true}`, text)
	return text, rawResponse, nil
}
