package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Caption backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Index lists the API surface at the root path.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Caption Backend API",
		"status":  "running",
		"endpoints": gin.H{
			"health":     "/api/health",
			"transcribe": "/api/transcribe",
			"captions":   "/api/captions",
			"styles":     "/api/styles",
			"model":      "/api/model",
		},
	})
}
