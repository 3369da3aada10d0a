package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

const translatePrompt = `Translate each English subtitle line below into %s for a language learner.
Keep the meaning literal and the register informal. Return ONLY a JSON array of %d strings,
one per input line, in the same order. No commentary.

Lines:
%s`

// CompleteFunc sends a single prompt to a language model and returns its raw reply.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// LLMTranslator fills empty segment translations with one model call per transcript.
type LLMTranslator struct {
	Complete    CompleteFunc
	Target      string
	MaxSegments int
	Timeout     time.Duration
}

// NewLLMTranslator wires an LLMTranslator to a go-kit LLM client.
func NewLLMTranslator(client *llm.Client, target string, maxSegments int, timeout time.Duration) *LLMTranslator {
	return &LLMTranslator{
		Complete: func(ctx context.Context, prompt string) (string, error) {
			return client.Complete(ctx, "", prompt,
				llm.WithChatTemperature(0.2),
				llm.WithChatMaxTokens(8192),
			)
		},
		Target:      target,
		MaxSegments: maxSegments,
		Timeout:     timeout,
	}
}

// Translate returns a copy of segs where the first MaxSegments segments with an
// empty translation are filled in. On any failure the input is left untouched
// and an error is returned.
func (t *LLMTranslator) Translate(ctx context.Context, segs []TranscriptSegment) ([]TranscriptSegment, error) {
	var idx []int
	var lines []string
	for i, s := range segs {
		if s.Translation != "" || s.Text == "" {
			continue
		}
		if t.MaxSegments > 0 && len(idx) >= t.MaxSegments {
			break
		}
		idx = append(idx, i)
		lines = append(lines, s.Text)
	}
	if len(idx) == 0 {
		return segs, nil
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return segs, err
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	metrics.TranslateCalls.Add(1)
	raw, err := t.Complete(ctx, fmt.Sprintf(translatePrompt, t.Target, len(lines), payload))
	if err != nil {
		metrics.TranslateErrors.Add(1)
		return segs, fmt.Errorf("translate: %w", err)
	}

	var out []string
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		metrics.TranslateErrors.Add(1)
		return segs, fmt.Errorf("translate: decode reply: %w", err)
	}
	if len(out) != len(lines) {
		metrics.TranslateErrors.Add(1)
		return segs, errors.New("translate: reply length mismatch")
	}

	result := make([]TranscriptSegment, len(segs))
	copy(result, segs)
	for j, i := range idx {
		result[i].Translation = out[j]
	}
	LoggerFrom(ctx).Debug("subtitles: translated segments", slog.Int("count", len(idx)), slog.String("target", t.Target))
	return result, nil
}
