package modeladapters

import (
	"fmt"
	"log"
	"os"
)

// GetModelAdapter selects the generative model adapter from environment
// configuration. MODEL_VENDOR chooses the adapter ("openrouter" or "mock";
// default "openrouter" when an API key is present, "mock" otherwise).
func GetModelAdapter() (GenerativeModelAdapter, error) {
	vendor := os.Getenv("MODEL_VENDOR")
	apiKey := os.Getenv("OPENROUTER_API_KEY")

	if vendor == "" {
		if apiKey != "" {
			vendor = "openrouter"
		} else {
			log.Println("WARNING: MODEL_VENDOR and OPENROUTER_API_KEY not set. Defaulting to the mock model adapter.")
			vendor = "mock"
		}
	}

	switch vendor {
	case "openrouter":
		log.Println("Selected OpenRouterModelAdapter.")
		return NewOpenRouterModelAdapter(OpenRouterConfig{
			APIKey:  apiKey,
			BaseURL: os.Getenv("OPENROUTER_BASE_URL"),
			Model:   os.Getenv("OPENROUTER_MODEL"),
			Referer: os.Getenv("OPENROUTER_HTTP_REFERER"),
			Title:   os.Getenv("OPENROUTER_APP_TITLE"),
		})
	case "mock":
		log.Println("Selected MockModelAdapter.")
		return &MockModelAdapter{}, nil
	default:
		return nil, fmt.Errorf("no generative model adapter available for vendor: %s", vendor)
	}
}
