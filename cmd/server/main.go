package main

import (
	"log"
	"os"

	"artisan-story-platform/backend/internal/apigateway"
	"artisan-story-platform/backend/internal/auth"
	"artisan-story-platform/backend/internal/coreengine/asradapters"
	"artisan-story-platform/backend/internal/coreengine/modeladapters"
	"artisan-story-platform/backend/internal/coreengine/storypersistence"
	"artisan-story-platform/backend/internal/datastore"
	"artisan-story-platform/backend/internal/objectstore"
	"artisan-story-platform/backend/internal/storygeneration"
	"artisan-story-platform/backend/internal/transcription"
)

func main() {
	// Load configurations at startup.
	auth.LoadServiceCredentials()

	// Initialize MongoDB connection.
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDatabase := os.Getenv("MONGO_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "artisan_story_platform"
	}
	if err := datastore.InitMongo(mongoURI, mongoDatabase); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer datastore.Store.Close()

	// Initialize MinIO client.
	if err := objectstore.InitMinioClient(); err != nil {
		log.Fatalf("Failed to initialize MinIO client: %v", err)
	}
	minioClient, err := objectstore.GetGlobalMinioClient()
	if err != nil {
		log.Fatalf("MinIO client unavailable: %v", err)
	}

	// Generative model adapter (OpenRouter by default, mock for local dev).
	model, err := modeladapters.GetModelAdapter()
	if err != nil {
		log.Fatalf("Failed to initialize generative model adapter: %v", err)
	}

	// Speech recognition adapter.
	asrSettings := asradapters.LoadVendorSettingsFromEnv()
	asr, err := asradapters.GetASRAdapter(asrSettings, minioClient)
	if err != nil {
		log.Fatalf("Failed to initialize ASR adapter: %v", err)
	}

	// Wire up services.
	stories := datastore.Store.StoryDocuments()
	coordinator := storypersistence.NewCoordinator(stories, minioClient)
	storyService := storygeneration.NewStoryService(model, datastore.Store, coordinator)
	transcriptionService := transcription.NewTranscriptionService(minioClient, datastore.Store, asr)

	// Setup router.
	router := apigateway.SetupRouter(apigateway.Services{
		Story:         storyService,
		Transcription: transcriptionService,
		Stories:       stories,
	})

	// Start server.
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	log.Printf("Starting server on :%s", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
