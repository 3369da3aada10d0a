package apiserver

import (
	"net/http"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/gin-gonic/gin"
)

// DifficultyResponse is the body of GET /api/difficulty.
type DifficultyResponse struct {
	Text       string            `json:"text"`
	Difficulty engine.Difficulty `json:"difficulty"`
}

// RegisterDifficultyRoutes registers the text difficulty endpoint.
func RegisterDifficultyRoutes(r *gin.Engine) {
	r.GET("/api/difficulty", func(c *gin.Context) {
		text := c.Query("text")
		c.JSON(http.StatusOK, DifficultyResponse{Text: text, Difficulty: engine.ClassifyDifficulty(text)})
	})
}
