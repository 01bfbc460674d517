package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codekivy/kivybot-be/service"
	"github.com/codekivy/kivybot-be/types"
)

type VoiceHandler struct {
	router *service.Router
}

func NewVoiceHandler(router *service.Router) *VoiceHandler {
	return &VoiceHandler{
		router: router,
	}
}

// HandleVoice serves POST /api/voice. The audio arrives as a multipart
// upload under the "file" field; pipeline failures are returned as an
// {error} envelope with status 200, matching the chat error convention.
func (h *VoiceHandler) HandleVoice(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Audio file is required"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Failed to read audio"})
		return
	}

	resp, errMsg := h.router.HandleVoice(c.Request.Context(), audio)
	if errMsg != "" {
		c.JSON(http.StatusOK, types.ErrorResponse{Error: errMsg})
		return
	}
	c.JSON(http.StatusOK, resp)
}
