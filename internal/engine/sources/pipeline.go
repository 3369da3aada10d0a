package sources

import (
	"context"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
)

var (
	_ engine.MetadataFetcher        = (*YouTubeData)(nil)
	_ engine.CaptionLister          = (*YouTubeData)(nil)
	_ engine.OfficialCaptionFetcher = OfficialCaptions{}
	_ engine.FallbackCascade        = (*Cascade)(nil)
)

// NewPipeline assembles the subtitle pipeline from c. In demo mode no Data API
// client is created, since the pipeline never reaches it.
func NewPipeline(ctx context.Context, c *engine.Config) (*engine.Pipeline, error) {
	p := &engine.Pipeline{APIKey: c.YouTubeAPIKey}
	if !engine.HasCredential(c.YouTubeAPIKey) {
		return p, nil
	}

	yt, err := NewYouTubeData(ctx, c.YouTubeAPIKey, c.YouTubeAPIEndpoint, c.MetadataTimeout)
	if err != nil {
		return nil, err
	}
	p.Metadata = yt
	p.Captions = yt
	p.Official = OfficialCaptions{}
	p.Cascade = &Cascade{
		Helper: &Helper{Command: c.HelperCommand, Timeout: c.HelperTimeout},
		Scrapers: &Scrapers{
			Endpoints:  c.ScraperEndpoints,
			Timeout:    c.ScraperTimeout,
			HTTPClient: c.HTTPClient,
			Browser:    c.BrowserClient,
		},
	}
	if c.TranslateEnabled && c.LLMClient != nil {
		p.Translator = engine.NewLLMTranslator(c.LLMClient, c.TranslateTarget, c.TranslateMaxSegments, c.TranslateTimeout)
	}
	return p, nil
}
