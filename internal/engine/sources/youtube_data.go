package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/samber/lo"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube Data API v3: video metadata and caption track listing.
// Both calls are single-shot and bounded by the configured timeout.

const descriptionMaxLen = 200

// ErrVideoNotFound is returned when the Data API knows no video with the given id.
var ErrVideoNotFound = errors.New("no video found with that id")

// YouTubeData wraps the Data API v3 service for one API key.
type YouTubeData struct {
	svc     *youtube.Service
	apiKey  string
	timeout time.Duration
}

// NewYouTubeData creates a Data API client authenticated with apiKey.
// endpoint overrides the API base URL when non-empty.
func NewYouTubeData(ctx context.Context, apiKey, endpoint string, timeout time.Duration) (*YouTubeData, error) {
	opts := []option.ClientOption{
		option.WithAPIKey(apiKey),
		option.WithUserAgent(engine.UserAgentBot),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YouTubeData{svc: svc, apiKey: apiKey, timeout: timeout}, nil
}

// FetchVideoInfo returns normalized metadata for videoID.
func (y *YouTubeData) FetchVideoInfo(ctx context.Context, videoID string) (*engine.VideoInfo, error) {
	log := engine.LoggerFrom(ctx)
	log.Debug("youtube: videos.list",
		slog.String("id", videoID), slog.String("key", engine.RedactKey(y.apiKey)))

	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	resp, err := y.svc.Videos.List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("videos.list timed out after %s", y.timeout)
		}
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return nil, ErrVideoNotFound
	}

	info := videoInfoFrom(resp.Items[0])
	log.Debug("youtube: got video info", slog.String("title", info.Title))
	return info, nil
}

// ListCaptionTracks returns the caption tracks of videoID.
// The slice is never nil, also when an error is returned.
func (y *YouTubeData) ListCaptionTracks(ctx context.Context, videoID string) ([]engine.CaptionTrack, error) {
	log := engine.LoggerFrom(ctx)
	log.Debug("youtube: captions.list",
		slog.String("id", videoID), slog.String("key", engine.RedactKey(y.apiKey)))

	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	resp, err := y.svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return []engine.CaptionTrack{}, fmt.Errorf("captions.list timed out after %s", y.timeout)
		}
		return []engine.CaptionTrack{}, fmt.Errorf("captions.list: %w", err)
	}

	items := lo.Filter(resp.Items, func(c *youtube.Caption, _ int) bool { return c != nil })
	tracks := lo.Map(items, func(c *youtube.Caption, _ int) engine.CaptionTrack {
		t := engine.CaptionTrack{ID: c.Id}
		if c.Snippet != nil {
			t.Language = c.Snippet.Language
			t.Name = c.Snippet.Name
			t.TrackKind = c.Snippet.TrackKind
		}
		return t
	})
	log.Debug("youtube: caption tracks", slog.Int("count", len(tracks)))
	return tracks, nil
}

func videoInfoFrom(v *youtube.Video) *engine.VideoInfo {
	info := &engine.VideoInfo{}
	if s := v.Snippet; s != nil {
		info.Title = s.Title
		info.ChannelTitle = s.ChannelTitle
		info.PublishedAt = s.PublishedAt
		info.Description = engine.TruncateRunes(s.Description, descriptionMaxLen, "") + "..."
		info.Thumbnails = thumbnailsFrom(s.Thumbnails)
	} else {
		info.Description = "..."
	}
	if v.ContentDetails != nil {
		info.Duration = v.ContentDetails.Duration
	}
	return info
}

func thumbnailsFrom(d *youtube.ThumbnailDetails) map[string]engine.Thumbnail {
	if d == nil {
		return nil
	}
	out := make(map[string]engine.Thumbnail, 5)
	for name, t := range map[string]*youtube.Thumbnail{
		"default":  d.Default,
		"medium":   d.Medium,
		"high":     d.High,
		"standard": d.Standard,
		"maxres":   d.Maxres,
	} {
		if t != nil {
			out[name] = engine.Thumbnail{URL: t.Url, Width: t.Width, Height: t.Height}
		}
	}
	return out
}
