package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"cv-match-go/internal/analyzer"
	"cv-match-go/internal/api/handler"
	"cv-match-go/internal/api/router"
	"cv-match-go/internal/cache"
	"cv-match-go/internal/config"
	"cv-match-go/internal/embedding"
	"cv-match-go/internal/lexicon"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/parser"
	"cv-match-go/internal/report"
	"cv-match-go/internal/scoring"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration failed")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	// Route hertz's own logging through the same zerolog instance.
	glog.SetLogger(hertzadapter.From(logger.Logger))

	logger.Info().Str("address", cfg.Server.Address).Msg("configuration loaded")

	ctx := context.Background()

	extractor, err := parser.NewTextExtractor(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing text extractor failed")
	}

	lex := lexicon.Default(cfg.Lexicon.ExtraTechnicalSkills, cfg.Lexicon.ExtraSoftSkills)

	// The embedding backend is only constructed when the first request
	// needs a semantic score, so the server starts without the API key
	// being reachable.
	similarity := embedding.NewService(func() (embedding.Embedder, error) {
		return embedding.NewClient(cfg.Embedding)
	})

	results := cache.New(time.Duration(cfg.CacheTTLMinutes) * time.Minute)
	defer results.Close()

	matchHandler := handler.NewMatchHandler(
		cfg,
		extractor,
		analyzer.NewCVAnalyzer(lex),
		analyzer.NewOfferAnalyzer(lex),
		scoring.NewEngine(cfg.Scoring, lex, similarity),
		report.NewBuilder(cfg.Scoring.Thresholds),
		results,
	)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, matchHandler)

	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("HTTP server starting")
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("shutdown complete")
}
