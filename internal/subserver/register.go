package subserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/anatolykoptev/go_subtitles/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SubtitlesInput is the input for video_subtitles.
type SubtitlesInput struct {
	Video string `json:"video" jsonschema:"YouTube video id or URL"`
}

// DifficultyInput is the input for text_difficulty.
type DifficultyInput struct {
	Text string `json:"text" jsonschema:"English text to classify"`
}

// DifficultyOutput is the structured output of text_difficulty.
type DifficultyOutput struct {
	Difficulty engine.Difficulty `json:"difficulty"`
}

// RegisterTools registers the subtitle tools on the given MCP server:
// video_subtitles, text_difficulty.
func RegisterTools(server *mcp.Server, p *engine.Pipeline) {
	registerVideoSubtitles(server, p)
	registerTextDifficulty(server)
}

func registerVideoSubtitles(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_subtitles",
		Description: "Fetch an English transcript for a YouTube video, with Spanish translations where available and a beginner/intermediate/advanced difficulty label per line. Falls back from official captions to a transcript helper, third-party endpoints and finally a sample transcript; the source field tells which one was used.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, videoSubtitles(p))
}

func videoSubtitles(p *engine.Pipeline) func(context.Context, *mcp.CallToolRequest, SubtitlesInput) (*mcp.CallToolResult, *engine.SubtitlesResponse, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SubtitlesInput) (*mcp.CallToolResult, *engine.SubtitlesResponse, error) {
		if strings.TrimSpace(input.Video) == "" {
			return nil, nil, fmt.Errorf("video is required")
		}
		resp, err := p.Run(ctx, toolutil.NormVideoID(input.Video))
		if err != nil {
			return nil, nil, err
		}
		return nil, resp, nil
	}
}

func registerTextDifficulty(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "text_difficulty",
		Description: "Classify the reading level of an English sentence as beginner, intermediate or advanced, based on word length, long-word ratio and academic connectors.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, textDifficulty)
}

func textDifficulty(_ context.Context, _ *mcp.CallToolRequest, input DifficultyInput) (*mcp.CallToolResult, DifficultyOutput, error) {
	return nil, DifficultyOutput{Difficulty: engine.ClassifyDifficulty(input.Text)}, nil
}
