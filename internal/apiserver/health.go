package apiserver

import (
	"net/http"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes registers health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, p *engine.Pipeline) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "demo_mode": !engine.HasCredential(p.APIKey)})
	})
	r.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, engine.FormatMetrics())
	})
}
