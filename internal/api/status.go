package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version 服务版本
const Version = "2.0.0"

// Health 健康检查
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "gcgviz",
		"version":   Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
