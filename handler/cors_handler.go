package handler

import (
	"github.com/gin-gonic/gin"
)

type CorsHandler struct {
	allowedOrigins map[string]bool
}

func NewCorsHandler(origins []string) *CorsHandler {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return &CorsHandler{allowedOrigins: allowed}
}

func (h *CorsHandler) CorsMiddleware(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin != "" && h.allowedOrigins[origin] {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(200)
		return
	}
	c.Next()
}
