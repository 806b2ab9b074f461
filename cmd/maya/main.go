package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Conceptual-Machines/maya-agents-go/config"
	"github.com/Conceptual-Machines/maya-agents-go/logging"
	"github.com/Conceptual-Machines/maya-agents-go/metrics"
	"github.com/Conceptual-Machines/maya-agents-go/session"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", os.Stderr)
		log.Fatal().Err(err).Msg("❌ Configuration error")
	}
	logging.Setup(cfg.LogLevel, os.Stderr)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		}); err != nil {
			log.Warn().Err(err).Msg("⚠️  Sentry init failed, continuing without it")
		}
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.MetricsAddr != "" {
		srv := metrics.StartMetricsServer(cfg.MetricsAddr)
		defer func() { _ = srv.Close() }()
		log.Info().Str("addr", cfg.MetricsAddr).Msg("📊 Prometheus metrics enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := session.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to start MAYA")
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		return
	}
	log.Info().Str("session", s.ID()).Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("🎵 MAYA ready")

	if err := runREPL(ctx, os.Stdin, os.Stdout, s); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Application error")
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
	}
}
