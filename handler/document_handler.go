package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codekivy/kivybot-be/service"
	"github.com/codekivy/kivybot-be/types"
)

type DocumentHandler struct {
	store *service.DocumentStore
}

func NewDocumentHandler(store *service.DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		store: store,
	}
}

// sessionID reads the session id from the query string or, for POSTs, the
// JSON body, defaulting to the fixed sentinel session.
func sessionID(c *gin.Context) string {
	if id := c.Query("session_id"); id != "" {
		return id
	}
	var req types.ClearDocumentRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.SessionID != "" {
		return req.SessionID
	}
	return types.DefaultSessionID
}

// HandleClear serves POST /api/document/clear.
func (h *DocumentHandler) HandleClear(c *gin.Context) {
	id := sessionID(c)

	status := "not_found"
	if h.store.ClearActiveDocument(id) {
		status = "cleared"
	}
	c.JSON(http.StatusOK, types.ClearDocumentResponse{
		Status:    status,
		SessionID: id,
	})
}

// HandleStatus serves GET /api/document/status.
func (h *DocumentHandler) HandleStatus(c *gin.Context) {
	id := c.Query("session_id")
	if id == "" {
		id = types.DefaultSessionID
	}

	text, ok := h.store.GetActiveDocument(id)
	c.JSON(http.StatusOK, types.DocumentStatusResponse{
		HasDocument:    ok,
		DocumentLength: len(text),
		SessionID:      id,
	})
}
