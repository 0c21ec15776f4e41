package extract_module

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesnap/notesnap/internal/extraction"
	"github.com/notesnap/notesnap/pkg/sdk"
)

// ProcessNotes handles POST requests to extract structured meeting
// data from an image.
// This endpoint keeps the raw browser-facing wire contract: a bare
// MeetingData object on success, `{"error": ...}` bodies on failure
func ProcessNotes(c *gin.Context) {
	var req sdk.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	data, err := extractionClient.Extract(c.Request.Context(), req.ImageBase64)
	if err != nil {
		// Detail stays in the server log; the client only sees the
		// classified message
		log.Printf("[EXTRACT]: extraction failed: %v", err)

		switch extraction.KindOf(err) {
		case extraction.KindInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		case extraction.KindRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again in a moment."})
		case extraction.KindQuotaExhausted:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "AI credits exhausted. Please add credits to continue."})
		case extraction.KindMalformedModelOutput:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI did not return structured data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process notes"})
		}
		return
	}

	c.JSON(http.StatusOK, data)
}
