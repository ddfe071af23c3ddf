package asradapters

import (
	"fmt"
	"log"
	"os"

	"artisan-story-platform/backend/internal/objectstore"
)

// LoadVendorSettingsFromEnv reads speech-vendor configuration from the
// environment. ASR_VENDOR selects the adapter ("google", "tencent", "mock";
// default "mock" with a warning).
func LoadVendorSettingsFromEnv() VendorSettings {
	settings := VendorSettings{
		Vendor:          os.Getenv("ASR_VENDOR"),
		APIKey:          os.Getenv("ASR_API_KEY"),
		APISecret:       os.Getenv("ASR_API_SECRET"),
		Region:          os.Getenv("ASR_REGION"),
		Endpoint:        os.Getenv("ASR_ENDPOINT"),
		EngineModelType: os.Getenv("ASR_ENGINE_MODEL_TYPE"),
		CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
	}
	if settings.Vendor == "" {
		log.Println("WARNING: ASR_VENDOR environment variable not set. Defaulting to the mock ASR adapter.")
		settings.Vendor = "mock"
	}
	return settings
}

// GetASRAdapter selects and returns an ASRAdapter for the configured vendor.
func GetASRAdapter(settings VendorSettings, minioClient *objectstore.MinioClient) (ASRAdapter, error) {
	log.Printf("Attempting to get ASR adapter for vendor: %s", settings.Vendor)

	switch settings.Vendor {
	case "google":
		if minioClient == nil {
			return nil, fmt.Errorf("GoogleASRAdapter requires an initialized object store client, but it's nil")
		}
		return NewGoogleASRAdapter(minioClient, settings), nil
	case "tencent":
		if minioClient == nil {
			return nil, fmt.Errorf("TencentASRAdapter requires an initialized object store client, but it's nil")
		}
		return NewTencentASRAdapter(minioClient, settings), nil
	case "mock":
		return &MockASRAdapter{}, nil
	default:
		return nil, fmt.Errorf("no ASR adapter available for vendor: %s", settings.Vendor)
	}
}
