package datastore

import (
	"context"
	"fmt"
	"time"
)

// InsertTranscription appends a transcription log entry.
func (s *MongoStore) InsertTranscription(ctx context.Context, entry TranscriptionLog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if entry.Lang == "" {
		entry.Lang = "auto"
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if _, err := s.transcriptions.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert transcription log: %w", err)
	}
	return nil
}
