package sources

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
)

// Cascade tries the helper process first, then the third-party endpoints.
// The first non-empty transcript wins; each tier is attempted once.
type Cascade struct {
	Helper   *Helper
	Scrapers *Scrapers
}

// FetchTranscript implements engine.FallbackCascade.
func (c *Cascade) FetchTranscript(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	log := engine.LoggerFrom(ctx)

	if c.Helper.Enabled() {
		segs, err := c.Helper.Run(ctx, videoID)
		if err == nil && len(segs) > 0 {
			return segs, nil
		}
		log.Warn("cascade: helper failed, trying external endpoints", slog.Any("error", err))
	}

	if c.Scrapers != nil {
		segs, err := c.Scrapers.Fetch(ctx, videoID)
		if err == nil && len(segs) > 0 {
			return segs, nil
		}
		log.Warn("cascade: external endpoints failed", slog.Any("error", err))
	}

	return nil, engine.ErrNoTranscript
}
