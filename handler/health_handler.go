package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codekivy/kivybot-be/service"
)

type HealthHandler struct {
	store *service.DocumentStore
}

func NewHealthHandler(store *service.DocumentStore) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// HandleRoot serves GET / with a static feature overview.
func (h *HealthHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "CodeKivy API running",
		"features": gin.H{
			"chat":      "Groq (ultra-fast text)",
			"images":    "Gemini (vision support)",
			"documents": "PDF/DOCX/TXT analysis",
			"voice":     "Groq + Deepgram",
		},
		"active_sessions": h.store.ActiveSessionCount(),
	})
}

// HandleHealth serves GET /health.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"active_documents": h.store.ActiveSessionCount(),
	})
}
