// Package apiserver exposes the subtitle pipeline over HTTP.
package apiserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(p *engine.Pipeline) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors())

	RegisterSubtitleRoutes(r, p)
	RegisterDifficultyRoutes(r)
	RegisterHealthRoutes(r, p)
	return r
}

// cors allows any origin and answers preflight requests with an empty 200.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// requestLogger attaches a request-scoped slog logger and logs completion.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)

		log := slog.Default().With(slog.String("request_id", id))
		c.Request = c.Request.WithContext(engine.WithLogger(c.Request.Context(), log))

		c.Next()

		log.Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
