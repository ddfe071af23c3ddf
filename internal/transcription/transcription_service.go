package transcription

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"artisan-story-platform/backend/internal/coreengine/asradapters"
	"artisan-story-platform/backend/internal/datastore"
)

// AudioStore is the object-store surface the service needs for audio uploads.
type AudioStore interface {
	UploadAudio(ctx context.Context, artisanName, productName, originalFilename string, reader io.Reader, size int64, contentType string) (objectName string, url string, err error)
}

// TranscriptStore is the document-store surface the service records into.
// AppendProduct is the store's array-union capability: replaying the same
// product entry does not duplicate it.
type TranscriptStore interface {
	AppendProduct(ctx context.Context, artisanID string, entry datastore.ProductEntry) error
	InsertTranscription(ctx context.Context, entry datastore.TranscriptionLog) error
}

// TranscribeInput carries one audio-transcription request.
type TranscribeInput struct {
	ArtisanName string
	ProductName string
	Lang        string
	Filename    string
	ContentType string
	Audio       io.Reader
	Size        int64
}

// TranscribeResult is returned to the transport layer.
type TranscribeResult struct {
	Bio      string `json:"bio"`
	AudioURL string `json:"audio_file"`
}

// TranscriptionService uploads audio, transcribes it via the configured ASR
// vendor, and records the result.
type TranscriptionService struct {
	audio AudioStore
	store TranscriptStore
	asr   asradapters.ASRAdapter
}

// NewTranscriptionService creates a TranscriptionService with its collaborators.
func NewTranscriptionService(audio AudioStore, store TranscriptStore, asr asradapters.ASRAdapter) *TranscriptionService {
	return &TranscriptionService{audio: audio, store: store, asr: asr}
}

// TranscribeAndStore runs one transcription request end to end: the audio is
// archived first so a transcription failure never loses the upload, then the
// transcript is appended to the artisan's products and logged.
func (s *TranscriptionService) TranscribeAndStore(ctx context.Context, input TranscribeInput) (*TranscribeResult, error) {
	objectName, audioURL, err := s.audio.UploadAudio(ctx, input.ArtisanName, input.ProductName, input.Filename, input.Audio, input.Size, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store audio upload: %w", err)
	}

	text, _, err := s.asr.Recognize(ctx, objectName, input.Lang)
	if err != nil {
		return nil, fmt.Errorf("transcription failed for '%s': %w", objectName, err)
	}

	entry := datastore.ProductEntry{
		Name:      input.ProductName,
		Bio:       text,
		AudioFile: audioURL,
	}
	if err := s.store.AppendProduct(ctx, input.ArtisanName, entry); err != nil {
		return nil, err
	}

	logEntry := datastore.TranscriptionLog{
		ArtisanName: input.ArtisanName,
		ProductName: input.ProductName,
		Text:        text,
		AudioURL:    audioURL,
		Lang:        input.Lang,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.store.InsertTranscription(ctx, logEntry); err != nil {
		// The product entry already landed; the audit log is secondary.
		log.Printf("Failed to insert transcription log for artisan '%s', product '%s': %v",
			input.ArtisanName, input.ProductName, err)
	}

	return &TranscribeResult{Bio: text, AudioURL: audioURL}, nil
}
