package asradapters

import "context"

// VendorSettings carries the credentials and tuning a speech vendor needs.
// Values are loaded from the environment by the registry at startup.
type VendorSettings struct {
	Vendor          string // "google", "tencent", "mock"
	APIKey          string
	APISecret       string
	Region          string
	Endpoint        string
	EngineModelType string
	CredentialsPath string // Google service-account credentials file
}

// ASRAdapter defines the interface for speech-to-text vendor services.
type ASRAdapter interface {
	// Recognize transcribes the audio stored at audioObjectName (an object
	// key in the platform's object storage) in the given language. It
	// returns the recognized text plus the vendor's raw response for
	// auditing.
	Recognize(ctx context.Context, audioObjectName string, languageCode string) (recognizedText string, rawResponse string, err error)
}
