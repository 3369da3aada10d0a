package engine

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
)

// PlaceholderAPIKey is the sample key shipped in example .env files.
// Treated the same as an absent key.
const PlaceholderAPIKey = "EXAMPLE_API_KEY_REPLACE_WITH_REAL_ONE"

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey        string
	YouTubeAPIEndpoint   string // override for the Data API base URL (tests, proxies)
	MetadataTimeout      time.Duration
	HelperCommand        []string // empty = helper tier disabled
	HelperTimeout        time.Duration
	ScraperEndpoints     []string
	ScraperTimeout       time.Duration
	ScraperStealth       bool
	WebshareAPIKey       string
	TranslateEnabled     bool
	TranslateTarget      string
	TranslateMaxSegments int
	TranslateTimeout     time.Duration
	LLMAPIKey            string
	LLMAPIBase           string
	LLMModel             string
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = scrapers use HTTPClient
	LLMClient            *llm.Client    // nil = translation disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, apiserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// ConfigFromEnv reads the engine configuration from the process environment.
// Clients (HTTP, browser, LLM) are left for the caller to attach.
func ConfigFromEnv() Config {
	return Config{
		YouTubeAPIKey:        env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIEndpoint:   env.Str("YOUTUBE_API_ENDPOINT", ""),
		MetadataTimeout:      env.Duration("METADATA_TIMEOUT", 10*time.Second),
		HelperCommand:        strings.Fields(env.Str("HELPER_COMMAND", "python3 extract_subtitles.py")),
		HelperTimeout:        env.Duration("HELPER_TIMEOUT", 30*time.Second),
		ScraperEndpoints:     env.List("SCRAPER_ENDPOINTS", ""),
		ScraperTimeout:       env.Duration("SCRAPER_TIMEOUT", 5*time.Second),
		ScraperStealth:       envBool("SCRAPER_STEALTH"),
		WebshareAPIKey:       env.Str("WEBSHARE_API_KEY", ""),
		TranslateEnabled:     envBool("TRANSLATE_ENABLED"),
		TranslateTarget:      env.Str("TRANSLATE_TARGET", "Spanish"),
		TranslateMaxSegments: env.Int("TRANSLATE_MAX_SEGMENTS", 120),
		TranslateTimeout:     env.Duration("TRANSLATE_TIMEOUT", 20*time.Second),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(env.Str(key, "false")))
	return err == nil && v
}

// HasCredential reports whether key is usable for the YouTube Data API.
// Empty and placeholder keys switch the pipeline into demo mode.
func HasCredential(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

// DemoMode reports whether the configured key leaves the service in demo mode.
func DemoMode() bool {
	return !HasCredential(cfg.YouTubeAPIKey)
}
