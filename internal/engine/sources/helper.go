package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
)

// helperWaitDelay bounds how long output pipes are drained after the helper is killed.
const helperWaitDelay = 2 * time.Second

// Helper runs an external transcript extractor process.
// The video id is appended as the final argument; the process must print one
// JSON document {success, transcript, error?} to stdout and exit 0.
type Helper struct {
	Command []string
	Timeout time.Duration
}

type helperOutput struct {
	Success    bool                       `json:"success"`
	Transcript []engine.TranscriptSegment `json:"transcript"`
	Error      string                     `json:"error"`
}

// Enabled reports whether a helper command is configured.
func (h *Helper) Enabled() bool {
	return h != nil && len(h.Command) > 0
}

// Run executes the helper for videoID. The process is killed when the timeout expires.
func (h *Helper) Run(ctx context.Context, videoID string) ([]engine.TranscriptSegment, error) {
	if !h.Enabled() {
		return nil, errors.New("helper: no command configured")
	}
	engine.IncrHelperRuns()
	log := engine.LoggerFrom(ctx)
	log.Info("helper: extracting transcript", slog.String("cmd", h.Command[0]))

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	args := append(slices.Clone(h.Command[1:]), videoID)
	cmd := exec.CommandContext(ctx, h.Command[0], args...)
	cmd.WaitDelay = helperWaitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		engine.IncrHelperErrors()
		return nil, fmt.Errorf("helper: timed out after %s", h.Timeout)
	}
	if err != nil {
		engine.IncrHelperErrors()
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("helper: exited with code %d: %s",
				ee.ExitCode(), engine.TruncateAtWord(strings.TrimSpace(stderr.String()), 300))
		}
		return nil, fmt.Errorf("helper: run: %w", err)
	}

	segs, err := parseHelperOutput(stdout.Bytes())
	if err != nil {
		engine.IncrHelperErrors()
		return nil, err
	}
	log.Info("helper: extracted transcript", slog.Int("segments", len(segs)))
	return segs, nil
}

// parseHelperOutput decodes the helper's stdout document. Segments without a
// known difficulty are classified; segments whose end does not follow start are dropped.
func parseHelperOutput(data []byte) ([]engine.TranscriptSegment, error) {
	var out helperOutput
	if err := json.Unmarshal(bytes.TrimSpace(data), &out); err != nil {
		return nil, fmt.Errorf("helper: parse output: %w", err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("helper: reported failure: %s", msg)
	}

	segs := make([]engine.TranscriptSegment, 0, len(out.Transcript))
	for _, s := range out.Transcript {
		if s.End <= s.Start {
			continue
		}
		if !s.Difficulty.Valid() {
			s.Difficulty = engine.ClassifyDifficulty(s.Text)
		}
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return nil, errors.New("helper: empty transcript")
	}
	return segs, nil
}
