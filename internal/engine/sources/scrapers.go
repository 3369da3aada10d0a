package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
)

// Third-party transcript endpoints. They are unversioned, unauthenticated and
// frequently down; each is tried once and skipped on any failure.

// DefaultScraperEndpoints are tried in order. {videoId} is replaced by the raw
// id, {watchURL} by the query-escaped watch page URL.
var DefaultScraperEndpoints = []string{
	"https://youtubetranscript.com/?server_vid2={videoId}",
	"https://youtube-transcript-api.herokuapp.com/transcript?video_id={videoId}",
	"https://api.allorigins.win/get?url={watchURL}",
}

const (
	scraperMaxBody         = 4 * 1024 * 1024
	defaultSegmentDuration = 3.0
)

// Tolerant field aliases, first present non-zero value wins.
var (
	startAliases    = []string{"start", "offset"}
	durationAliases = []string{"duration", "dur"}
	textAliases     = []string{"text", "content"}
)

// Scrapers queries third-party transcript endpoints.
type Scrapers struct {
	Endpoints  []string
	Timeout    time.Duration
	HTTPClient *http.Client          // used when Browser is nil
	Browser    *engine.BrowserClient // optional TLS-fingerprinted transport
}

// Fetch returns the transcript from the first endpoint yielding a non-empty
// normalized sequence.
func (s *Scrapers) Fetch(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	log := engine.LoggerFrom(ctx)
	endpoints := s.Endpoints
	if len(endpoints) == 0 {
		endpoints = DefaultScraperEndpoints
	}

	for _, tmpl := range endpoints {
		target := expandEndpoint(tmpl, videoID)
		log.Debug("scraper: trying endpoint", slog.String("url", target))

		segs, err := s.fetchOne(ctx, target)
		if err != nil {
			engine.IncrScraperErrors()
			log.Info("scraper: endpoint failed", slog.String("url", target), slog.Any("error", err))
			continue
		}
		log.Info("scraper: transcript found", slog.String("url", target), slog.Int("segments", len(segs)))
		return segs, nil
	}
	return nil, errors.New("scraper: all endpoints failed")
}

func (s *Scrapers) fetchOne(ctx context.Context, target string) ([]engine.TranscriptSegment, error) {
	engine.IncrScraperRequests()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	body, status, err := s.get(ctx, target)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out after %s", s.Timeout)
		}
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("status %d", status)
	}

	segs, err := NormalizeScraped(body)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, errors.New("empty transcript")
	}
	return segs, nil
}

func (s *Scrapers) get(ctx context.Context, target string) ([]byte, int, error) {
	if s.Browser != nil {
		return engine.BrowserGet(ctx, s.Browser, target, map[string]string{
			"user-agent": engine.UserAgentScraper,
			"accept":     "application/json, */*;q=0.8",
		})
	}

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", engine.UserAgentScraper)
	req.Header.Set("Accept", "application/json, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, scraperMaxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return data, resp.StatusCode, nil
}

func expandEndpoint(tmpl, videoID string) string {
	watch := "https://www.youtube.com/watch?v=" + videoID
	r := strings.NewReplacer(
		"{videoId}", url.QueryEscape(videoID),
		"{watchURL}", url.QueryEscape(watch),
	)
	return r.Replace(tmpl)
}

// NormalizeScraped decodes a JSON array of loosely-shaped transcript items.
// Anything other than an array is rejected; non-object elements are skipped.
func NormalizeScraped(body []byte) ([]engine.TranscriptSegment, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, errors.New("response is not a JSON array")
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}

	segs := make([]engine.TranscriptSegment, 0, len(raw))
	for _, r := range raw {
		var item map[string]json.RawMessage
		if err := json.Unmarshal(r, &item); err != nil || item == nil {
			continue
		}
		segs = append(segs, normalizeItem(item))
	}
	return segs, nil
}

func normalizeItem(item map[string]json.RawMessage) engine.TranscriptSegment {
	start, _ := pickNumber(item, startAliases)
	dur, ok := pickNumber(item, durationAliases)
	if !ok || dur <= 0 {
		dur = defaultSegmentDuration
	}
	text := pickString(item, textAliases)
	return engine.TranscriptSegment{
		Start:       start,
		End:         start + dur,
		Text:        text,
		Translation: "",
		Difficulty:  engine.ClassifyDifficulty(text),
	}
}

// pickNumber returns the first alias holding a finite non-zero number or numeric string.
func pickNumber(item map[string]json.RawMessage, aliases []string) (float64, bool) {
	for _, key := range aliases {
		raw, ok := item[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			var s string
			if json.Unmarshal(raw, &s) != nil {
				continue
			}
			if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
				continue
			}
		}
		if f != 0 && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

// pickString returns the first alias holding a non-empty string.
func pickString(item map[string]json.RawMessage, aliases []string) string {
	for _, key := range aliases {
		raw, ok := item[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}
