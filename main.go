// go_subtitles: subtitle acquisition service for English learners.
//
// Serves GET /api/subtitles over HTTP and the same pipeline as MCP tools
// (video_subtitles, text_difficulty). Without a YouTube API key the service
// runs in demo mode and answers with sample transcripts.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_subtitles/internal/apiserver"
	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/anatolykoptev/go_subtitles/internal/engine/sources"
	"github.com/anatolykoptev/go_subtitles/internal/subserver"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	initLogger(env.Str("LOG_LEVEL", "info"))

	var (
		apiPort = env.Str("PORT", "3000")
		mcpPort = env.Str("MCP_PORT", "8891")
	)

	initEngine()

	pipeline, err := sources.NewPipeline(context.Background(), engine.Cfg)
	if err != nil {
		slog.Error("pipeline init failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting go_subtitles",
		slog.String("port", apiPort),
		slog.String("mcp_port", mcpPort),
		slog.Bool("demo_mode", engine.DemoMode()),
	)

	go serveAPI(apiPort, pipeline)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_subtitles",
		Version: version,
	}, nil)

	subserver.RegisterTools(server, pipeline)
	slog.Info("tools registered", slog.Int("count", 2))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_subtitles",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func initEngine() {
	c := engine.ConfigFromEnv()
	engine.AttachClients(context.Background(), &c)
	engine.Init(c)
}

func serveAPI(port string, p *engine.Pipeline) {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           apiserver.NewRouter(p),
		ReadHeaderTimeout: 10 * time.Second,
		// helper (30s) + scrapers (3x5s) + metadata (10s) + translation (20s)
		WriteTimeout: 90 * time.Second,
	}
	slog.Info("http api listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http api failed", slog.Any("error", err))
		os.Exit(1)
	}
}
