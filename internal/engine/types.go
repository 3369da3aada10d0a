package engine

import (
	"errors"
	"fmt"
)

// Difficulty is a coarse reading-level label attached to each transcript segment.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the three known labels.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Source tags which strategy produced a transcript.
type Source string

const (
	SourceDemo          Source = "demo-mode"
	SourceSample        Source = "enhanced-sample-data"
	SourceTranscriptAPI Source = "youtube-transcript-api"
	SourceRealSubtitles Source = "youtube-real-subtitles"
)

// TranscriptSegment is one timed subtitle line. End is always greater than Start.
type TranscriptSegment struct {
	Start       float64    `json:"start"`
	End         float64    `json:"end"`
	Text        string     `json:"text"`
	Translation string     `json:"translation"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Thumbnail is a single preview image of a video.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// VideoInfo is the normalized subset of YouTube video metadata returned to clients.
type VideoInfo struct {
	Title        string               `json:"title"`
	ChannelTitle string               `json:"channelTitle"`
	Duration     string               `json:"duration"` // ISO-8601, e.g. PT4M13S
	PublishedAt  string               `json:"publishedAt"`
	Description  string               `json:"description"` // at most 200 runes plus "..."
	Thumbnails   map[string]Thumbnail `json:"thumbnails,omitempty"`
}

// CaptionTrack describes one caption track listed by the Data API.
type CaptionTrack struct {
	ID        string `json:"id"`
	Language  string `json:"language"` // BCP-47
	Name      string `json:"name"`
	TrackKind string `json:"trackKind"`
}

// CaptionContent is the result of the official caption download step.
// Either Segments is set, or Unavailable explains why nothing could be read.
type CaptionContent struct {
	Segments    []TranscriptSegment
	Unavailable error
}

// Available reports whether the content carries usable segments.
func (c CaptionContent) Available() bool {
	return c.Unavailable == nil && len(c.Segments) > 0
}

// SubtitlesResponse is the envelope returned for every successful subtitles request.
type SubtitlesResponse struct {
	Success           bool                `json:"success"`
	VideoID           string              `json:"videoId"`
	VideoInfo         *VideoInfo          `json:"videoInfo"`
	Transcript        []TranscriptSegment `json:"transcript"`
	Source            Source              `json:"source"`
	AvailableCaptions []string            `json:"availableCaptions"`
	Note              string              `json:"note,omitempty"`
}

// ErrorResponse is the envelope returned for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var (
	// ErrVideoIDRequired is returned when a request carries no video id.
	ErrVideoIDRequired = errors.New("videoId required")
	// ErrCaptionsUnavailable marks the official caption download gate.
	ErrCaptionsUnavailable = errors.New("caption content unavailable")
	// ErrNoTranscript is returned when every fallback strategy came back empty.
	ErrNoTranscript = errors.New("no transcript from any fallback")
)

// InternalError wraps an unexpected failure caught at the pipeline boundary.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
