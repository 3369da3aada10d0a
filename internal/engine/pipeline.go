package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// transcriptAPIMinCount is the segment count above which a real transcript is
// labelled SourceTranscriptAPI instead of SourceRealSubtitles.
const transcriptAPIMinCount = 50

const (
	noteDemo          = "Demo mode active. Add a real YouTube API key for real subtitles."
	noteTranscriptAPI = "Real subtitles extracted by the transcript helper"
	noteRealSubtitles = "Real subtitles from YouTube API"
)

// MetadataFetcher looks up video metadata. A nil result means the video is unknown.
type MetadataFetcher interface {
	FetchVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error)
}

// CaptionLister lists the caption tracks of a video.
type CaptionLister interface {
	ListCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
}

// OfficialCaptionFetcher downloads the content of a listed caption track.
type OfficialCaptionFetcher interface {
	FetchCaptionContent(ctx context.Context, videoID string, tracks []CaptionTrack) CaptionContent
}

// FallbackCascade tries the alternative transcript strategies in order.
type FallbackCascade interface {
	FetchTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error)
}

// Translator fills empty segment translations. Implementations must not mutate the input.
type Translator interface {
	Translate(ctx context.Context, segs []TranscriptSegment) ([]TranscriptSegment, error)
}

// Pipeline sequences the subtitle strategies for one request at a time.
// Nil stages are skipped. A Pipeline holds no per-request state and is safe
// for concurrent use.
type Pipeline struct {
	APIKey     string
	Metadata   MetadataFetcher
	Captions   CaptionLister
	Official   OfficialCaptionFetcher
	Cascade    FallbackCascade
	Translator Translator // nil = translations left as produced
}

// Run produces the subtitles envelope for videoID. It returns ErrVideoIDRequired
// for a blank id and *InternalError when a stage panics; every other failure
// falls through to the next strategy, ending at the sample transcript.
func (p *Pipeline) Run(ctx context.Context, videoID string) (resp *SubtitlesResponse, err error) {
	metrics.SubtitleRequests.Add(1)

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, ErrVideoIDRequired
	}
	log := LoggerFrom(ctx).With(slog.String("video_id", videoID))
	ctx = WithLogger(ctx, log)

	defer func() {
		if r := recover(); r != nil {
			metrics.InternalErrors.Add(1)
			log.Error("subtitles: pipeline panic",
				slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
			resp, err = nil, &InternalError{Err: fmt.Errorf("%v", r)}
		}
	}()

	if !HasCredential(p.APIKey) {
		metrics.DemoModeResponses.Add(1)
		log.Info("subtitles: demo mode, no valid YouTube API key configured")
		return &SubtitlesResponse{
			Success:           true,
			VideoID:           videoID,
			Transcript:        SampleTranscript(videoID, nil),
			Source:            SourceDemo,
			AvailableCaptions: []string{},
			Note:              noteDemo,
		}, nil
	}

	info, tracks := p.lookup(ctx, videoID)
	languages := lo.Map(tracks, func(t CaptionTrack, _ int) string { return t.Language })

	if len(tracks) > 0 && p.Official != nil {
		content := p.Official.FetchCaptionContent(ctx, videoID, tracks)
		if content.Available() {
			return p.realResponse(ctx, videoID, info, content.Segments, languages), nil
		}
		metrics.OfficialUnavailable.Add(1)
		log.Debug("subtitles: official captions unavailable", slog.Any("reason", content.Unavailable))
	}

	if p.Cascade != nil {
		log.Info("subtitles: no official captions, trying alternative methods")
		var segs []TranscriptSegment
		cerr := TrackOperation(ctx, "fallback_cascade", func(ctx context.Context) error {
			var err error
			segs, err = p.Cascade.FetchTranscript(ctx, videoID)
			return err
		})
		if cerr == nil && len(segs) > 0 {
			return p.realResponse(ctx, videoID, info, segs, languages), nil
		}
		log.Warn("subtitles: alternative methods failed", slog.Any("error", cerr))
	}

	metrics.SyntheticFallbacks.Add(1)
	log.Info("subtitles: using sample transcript")
	title := "this video"
	if info != nil && info.Title != "" {
		title = info.Title
	}
	return &SubtitlesResponse{
		Success:           true,
		VideoID:           videoID,
		VideoInfo:         info,
		Transcript:        SampleTranscript(videoID, info),
		Source:            SourceSample,
		AvailableCaptions: languages,
		Note: fmt.Sprintf("Enhanced sample transcript for %s. "+
			"Real subtitles not accessible due to YouTube API limitations.", title),
	}, nil
}

// lookup fetches metadata and caption tracks concurrently. Failures are logged
// and absorbed: a nil info and an empty track list are valid outcomes.
func (p *Pipeline) lookup(ctx context.Context, videoID string) (*VideoInfo, []CaptionTrack) {
	log := LoggerFrom(ctx)

	var (
		wg     sync.WaitGroup
		info   *VideoInfo
		tracks []CaptionTrack
		panics [2]any
	)

	if p.Metadata != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { panics[0] = recover() }()
			v, err := p.Metadata.FetchVideoInfo(ctx, videoID)
			if err != nil {
				metrics.MetadataErrors.Add(1)
				log.Warn("subtitles: video info unavailable", slog.Any("error", err))
				return
			}
			info = v
		}()
	}

	if p.Captions != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { panics[1] = recover() }()
			t, err := p.Captions.ListCaptionTracks(ctx, videoID)
			if err != nil {
				metrics.CaptionListErrors.Add(1)
				log.Warn("subtitles: caption list unavailable", slog.Any("error", err))
				return
			}
			tracks = t
		}()
	}

	wg.Wait()
	for _, r := range panics {
		if r != nil {
			panic(r)
		}
	}
	if tracks == nil {
		tracks = []CaptionTrack{}
	}
	return info, tracks
}

// realResponse tags a transcript obtained from a real source and runs the
// optional translation step.
func (p *Pipeline) realResponse(ctx context.Context, videoID string, info *VideoInfo, segs []TranscriptSegment, languages []string) *SubtitlesResponse {
	log := LoggerFrom(ctx)
	log.Info("subtitles: real transcript found", slog.Int("segments", len(segs)))

	source, note := ProvenanceFor(len(segs))

	if p.Translator != nil {
		translated, err := p.Translator.Translate(ctx, segs)
		if err != nil {
			log.Warn("subtitles: translation skipped", slog.Any("error", err))
		} else {
			segs = translated
		}
	}

	return &SubtitlesResponse{
		Success:           true,
		VideoID:           videoID,
		VideoInfo:         info,
		Transcript:        segs,
		Source:            source,
		AvailableCaptions: languages,
		Note:              note,
	}
}

// ProvenanceFor labels a real transcript by its segment count.
func ProvenanceFor(count int) (Source, string) {
	if count > transcriptAPIMinCount {
		return SourceTranscriptAPI, noteTranscriptAPI
	}
	return SourceRealSubtitles, noteRealSubtitles
}
