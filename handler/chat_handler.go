package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codekivy/kivybot-be/service"
	"github.com/codekivy/kivybot-be/types"
)

type ChatHandler struct {
	router *service.Router
}

func NewChatHandler(router *service.Router) *ChatHandler {
	return &ChatHandler{
		router: router,
	}
}

// HandleChat serves POST /api/chat. All orchestration failures come back
// from the router as normal responses tagged mode "error"; the only HTTP
// error here is a malformed body.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp := h.router.HandleChat(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}
