package asradapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	"artisan-story-platform/backend/internal/objectstore"
)

// GoogleASRAdapter implements the ASRAdapter interface for Google Cloud
// Speech-to-Text.
type GoogleASRAdapter struct {
	MinioClient *objectstore.MinioClient
	Settings    VendorSettings
}

// NewGoogleASRAdapter creates a new instance of GoogleASRAdapter.
// It requires a MinioClient to fetch audio data from object storage.
func NewGoogleASRAdapter(minioClient *objectstore.MinioClient, settings VendorSettings) *GoogleASRAdapter {
	if minioClient == nil {
		log.Println("Warning: NewGoogleASRAdapter created with a nil MinioClient. File fetching will fail.")
	}
	return &GoogleASRAdapter{MinioClient: minioClient, Settings: settings}
}

// Recognize transcribes audio using Google Cloud Speech-to-Text.
func (a *GoogleASRAdapter) Recognize(ctx context.Context, audioObjectName string, languageCode string) (string, string, error) {
	if a.MinioClient == nil {
		return "", "", fmt.Errorf("GoogleASRAdapter: MinioClient is not initialized")
	}

	var opts []option.ClientOption
	if a.Settings.CredentialsPath != "" {
		log.Printf("Using Google credentials from path: %s", a.Settings.CredentialsPath)
		opts = append(opts, option.WithCredentialsFile(a.Settings.CredentialsPath))
	} else {
		// The library picks up GOOGLE_APPLICATION_CREDENTIALS on its own.
		log.Println("Attempting to use GOOGLE_APPLICATION_CREDENTIALS for authentication.")
	}

	speechClient, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return "", "", fmt.Errorf("failed to create Google Speech client: %w", err)
	}
	defer speechClient.Close()

	audioContent, err := a.MinioClient.GetFileBytes(ctx, audioObjectName)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch audio file '%s' from MinIO: %w", audioObjectName, err)
	}

	encoding := speechpb.RecognitionConfig_LINEAR16
	switch {
	case strings.HasSuffix(audioObjectName, ".flac"):
		encoding = speechpb.RecognitionConfig_FLAC
	case strings.HasSuffix(audioObjectName, ".mp3"):
		encoding = speechpb.RecognitionConfig_MP3
	}

	config := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		SampleRateHertz:            16000,
		LanguageCode:               languageCode,
		EnableAutomaticPunctuation: true,
	}
	if a.Settings.EngineModelType != "" {
		config.Model = a.Settings.EngineModelType
	}

	req := &speechpb.RecognizeRequest{
		Config: config,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioContent},
		},
	}

	log.Printf("Sending recognition request to Google Speech-to-Text API for %s", audioObjectName)
	startTime := time.Now()
	resp, err := speechClient.Recognize(ctx, req)
	log.Printf("Google Speech-to-Text API call for %s completed in %v", audioObjectName, time.Since(startTime))

	if err != nil {
		rawResponse := fmt.Sprintf(`{"error": "%s"}`, err.Error())
		return "", rawResponse, fmt.Errorf("Google Speech API recognition failed: %w", err)
	}

	var transcriptBuilder strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcriptBuilder.WriteString(result.Alternatives[0].Transcript)
			transcriptBuilder.WriteString(" ")
		}
	}
	recognizedText := strings.TrimSpace(transcriptBuilder.String())

	rawResponse := ""
	rawResponseBytes, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		log.Printf("Error marshalling Google Speech API response to JSON: %v", marshalErr)
		rawResponse = fmt.Sprintf(`{"error_marshalling_response": "%s"}`, marshalErr.Error())
	} else {
		rawResponse = string(rawResponseBytes)
	}

	log.Printf("GoogleASRAdapter: Successfully recognized text for '%s'", audioObjectName)
	return recognizedText, rawResponse, nil
}
