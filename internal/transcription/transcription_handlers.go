package transcription

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxAudioSize bounds uploaded audio files (100 MB).
const maxAudioSize = 100 * 1024 * 1024

// TranscribeAudioHandler handles multipart audio-transcription requests.
// Expected form fields: artisan_name, product_name, optional lang, and the
// audio file under "file".
func TranscribeAudioHandler(service *TranscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanName := c.PostForm("artisan_name")
		productName := c.PostForm("product_name")
		lang := c.PostForm("lang")
		if artisanName == "" || productName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "artisan_name and product_name are required"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "audio/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only audio files allowed."})
			return
		}
		if fileHeader.Size > maxAudioSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 100MB)."})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file: " + err.Error()})
			return
		}
		defer file.Close()

		result, err := service.TranscribeAndStore(c.Request.Context(), TranscribeInput{
			ArtisanName: artisanName,
			ProductName: productName,
			Lang:        lang,
			Filename:    fileHeader.Filename,
			ContentType: contentType,
			Audio:       file,
			Size:        fileHeader.Size,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
