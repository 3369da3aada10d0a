package engine

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// AttachClients builds the HTTP, browser and LLM clients c asks for.
// Optional clients that fail to initialize are left nil and logged.
func AttachClients(ctx context.Context, c *Config) {
	log := LoggerFrom(ctx)

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		}
	}

	if c.ScraperStealth && c.BrowserClient == nil {
		timeoutSec := max(int(c.ScraperTimeout/time.Second), 1)
		bc, err := NewBrowserClient(ctx, timeoutSec, c.WebshareAPIKey)
		if err != nil {
			log.Warn("stealth client init failed, scrapers use plain HTTP", slog.Any("error", err))
		} else {
			c.BrowserClient = bc
			log.Info("stealth browser client initialized")
		}
	}

	if c.TranslateEnabled && c.LLMClient == nil {
		if c.LLMAPIKey == "" {
			log.Warn("TRANSLATE_ENABLED set but LLM_API_KEY is empty, translation disabled")
		} else {
			c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
				llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
			)
			log.Info("translation enabled", slog.String("target", c.TranslateTarget), slog.String("model", c.LLMModel))
		}
	}
}
