package apigateway

import (
	"github.com/gin-gonic/gin"

	"artisan-story-platform/backend/internal/auth"
	"artisan-story-platform/backend/internal/datastore"
	"artisan-story-platform/backend/internal/storygeneration"
	"artisan-story-platform/backend/internal/transcription"
)

// Services groups the wired-up services the router exposes.
type Services struct {
	Story         *storygeneration.StoryService
	Transcription *transcription.TranscriptionService
	Stories       *datastore.StoryDocumentStore
}

// SetupRouter initializes the main Gin router for the API gateway.
// It includes public routes and authenticated routes.
func SetupRouter(services Services) *gin.Engine {
	router := gin.Default()

	// Public routes (login/logout).
	authRoutes := router.Group("/auth")
	{
		// auth.LoadServiceCredentials() must have been called at startup.
		authRoutes.POST("/login", auth.LoginHandler)
		authRoutes.POST("/logout", auth.LogoutHandler)
	}

	// Authenticated routes.
	apiRoutes := router.Group("/api")
	apiRoutes.Use(auth.AuthMiddleware())
	{
		storyRoutes := apiRoutes.Group("/stories")
		{
			storyRoutes.POST("/generate", storygeneration.GenerateStoryHandler(services.Story))
			storyRoutes.GET("/:user_id/:product_id", storygeneration.GetStoryHandler(services.Stories))
		}

		apiRoutes.POST("/transcribe-audio", transcription.TranscribeAudioHandler(services.Transcription))
	}

	return router
}
