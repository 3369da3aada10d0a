package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/samber/lo"
)

// englishLanguages are the caption languages accepted, in match order.
var englishLanguages = []string{"en", "en-US", "en-GB"}

// OfficialCaptions resolves an English caption track listed by the Data API.
//
// Downloading track content (captions.download) requires an OAuth grant from
// the video owner, which an API key cannot provide. The content is therefore
// always reported as unavailable; the pipeline moves on to the fallbacks.
type OfficialCaptions struct{}

// FetchCaptionContent picks the first English track and reports its content.
func (OfficialCaptions) FetchCaptionContent(ctx context.Context, videoID string, tracks []engine.CaptionTrack) engine.CaptionContent {
	log := engine.LoggerFrom(ctx)

	track, ok := PickEnglishTrack(tracks)
	if !ok {
		log.Debug("youtube: no English captions")
		return engine.CaptionContent{Unavailable: fmt.Errorf("%w: no English track", engine.ErrCaptionsUnavailable)}
	}

	log.Info("youtube: found English caption", slog.String("track", track.ID), slog.String("lang", track.Language))
	return engine.CaptionContent{
		Unavailable: fmt.Errorf("%w: download of track %s requires OAuth", engine.ErrCaptionsUnavailable, track.ID),
	}
}

// PickEnglishTrack returns the first track whose language is en, en-US or en-GB.
func PickEnglishTrack(tracks []engine.CaptionTrack) (engine.CaptionTrack, bool) {
	return lo.Find(tracks, func(t engine.CaptionTrack) bool {
		return lo.Contains(englishLanguages, t.Language)
	})
}
