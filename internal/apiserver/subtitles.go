package apiserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/anatolykoptev/go_subtitles/internal/toolutil"
	"github.com/gin-gonic/gin"
)

// RegisterSubtitleRoutes registers the subtitles endpoint.
func RegisterSubtitleRoutes(r *gin.Engine, p *engine.Pipeline) {
	h := handleSubtitles(p)
	r.GET("/api/subtitles", h)
	r.POST("/api/subtitles", h)
	r.OPTIONS("/api/subtitles", func(c *gin.Context) { c.Status(http.StatusOK) })
}

func handleSubtitles(p *engine.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID := c.Query("videoId")
		if videoID == "" {
			videoID = c.PostForm("videoId")
		}

		resp, err := p.Run(c.Request.Context(), toolutil.NormVideoID(videoID))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrVideoIDRequired) {
		c.JSON(http.StatusBadRequest, engine.ErrorResponse{Error: engine.ErrVideoIDRequired.Error()})
		return
	}
	engine.LoggerFrom(c.Request.Context()).Error("subtitles: request failed", slog.Any("error", err))
	details := err.Error()
	var ie *engine.InternalError
	if errors.As(err, &ie) {
		details = ie.Err.Error()
	}
	c.JSON(http.StatusInternalServerError, engine.ErrorResponse{
		Error:   "internal server error",
		Details: details,
	})
}
