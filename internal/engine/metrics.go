package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SubtitleRequests    atomic.Int64
	DemoModeResponses   atomic.Int64
	MetadataErrors      atomic.Int64
	CaptionListErrors   atomic.Int64
	OfficialUnavailable atomic.Int64
	HelperRuns          atomic.Int64
	HelperErrors        atomic.Int64
	ScraperRequests     atomic.Int64
	ScraperErrors       atomic.Int64
	SyntheticFallbacks  atomic.Int64
	TranslateCalls      atomic.Int64
	TranslateErrors     atomic.Int64
	InternalErrors      atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"subtitle_requests", "demo_mode_responses",
	"metadata_errors", "caption_list_errors", "official_unavailable",
	"helper_runs", "helper_errors",
	"scraper_requests", "scraper_errors",
	"synthetic_fallbacks",
	"translate_calls", "translate_errors",
	"internal_errors",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"subtitle_requests":    metrics.SubtitleRequests.Load(),
		"demo_mode_responses":  metrics.DemoModeResponses.Load(),
		"metadata_errors":      metrics.MetadataErrors.Load(),
		"caption_list_errors":  metrics.CaptionListErrors.Load(),
		"official_unavailable": metrics.OfficialUnavailable.Load(),
		"helper_runs":          metrics.HelperRuns.Load(),
		"helper_errors":        metrics.HelperErrors.Load(),
		"scraper_requests":     metrics.ScraperRequests.Load(),
		"scraper_errors":       metrics.ScraperErrors.Load(),
		"synthetic_fallbacks":  metrics.SyntheticFallbacks.Load(),
		"translate_calls":      metrics.TranslateCalls.Load(),
		"translate_errors":     metrics.TranslateErrors.Load(),
		"internal_errors":      metrics.InternalErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ sub-package.
func IncrHelperRuns()      { metrics.HelperRuns.Add(1) }
func IncrHelperErrors()    { metrics.HelperErrors.Add(1) }
func IncrScraperRequests() { metrics.ScraperRequests.Add(1) }
func IncrScraperErrors()   { metrics.ScraperErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		LoggerFrom(ctx).Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
