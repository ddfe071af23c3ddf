package storygeneration

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-story-platform/backend/internal/coreengine/storypersistence"
	"artisan-story-platform/backend/internal/datastore"
)

// maxImages bounds how many product photos a single submission may carry.
const maxImages = 5

// GenerateStoryHandler handles multipart story-generation requests.
// Expected form fields: user_id, product_id, audio_transcript, and up to
// five image files under "images".
func GenerateStoryHandler(service *StoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.PostForm("user_id")
		productID := c.PostForm("product_id")
		audioTranscript := c.PostForm("audio_transcript")
		if artisanID == "" || productID == "" || audioTranscript == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, product_id and audio_transcript are required"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
			return
		}
		if len(files) > maxImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 images allowed"})
			return
		}

		imagesBase64 := make([]string, 0, len(files))
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded image: " + err.Error()})
				return
			}
			imageBytes, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded image: " + err.Error()})
				return
			}
			imagesBase64 = append(imagesBase64, base64.StdEncoding.EncodeToString(imageBytes))
		}

		result, err := service.GenerateStory(c.Request.Context(), GenerateStoryInput{
			ArtisanID:       artisanID,
			ProductID:       productID,
			AudioTranscript: audioTranscript,
			ImagesBase64:    imagesBase64,
		})
		if err != nil {
			respondGenerateError(c, result, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"record":     result.Record,
			"references": result.References,
			"parsed":     result.Parsed,
		})
	}
}

// respondGenerateError maps service errors onto HTTP statuses. Sink write
// failures include which store is inconsistent so clients can retry the
// right half of the operation.
func respondGenerateError(c *gin.Context, result *GenerateStoryResult, err error) {
	switch {
	case errors.Is(err, datastore.ErrArtisanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, datastore.ErrProfileIncomplete):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	case errors.Is(err, ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
	default:
		var sinkErr *storypersistence.SinkWriteError
		if errors.As(err, &sinkErr) {
			body := gin.H{"error": err.Error(), "failed_sink": sinkErr.Sink}
			if result != nil && result.References != nil {
				body["references"] = result.References
			}
			c.JSON(http.StatusInternalServerError, body)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetStoryHandler returns a previously persisted story record.
func GetStoryHandler(stories *datastore.StoryDocumentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.Param("user_id")
		productID := c.Param("product_id")

		record, err := stories.GetStory(c.Request.Context(), artisanID, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve story: " + err.Error()})
			return
		}
		if record == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}
