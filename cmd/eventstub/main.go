package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/prohmpiriya/event-management/internal/stubserver"
	"github.com/prohmpiriya/event-management/pkg/config"
	"github.com/prohmpiriya/event-management/pkg/logger"
	"github.com/prohmpiriya/event-management/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("eventstub", pflag.ContinueOnError)
	fs.String("host", "0.0.0.0", "listen host")
	fs.Int("port", 8090, "listen port")
	fs.Bool("seed", true, "load sample events at startup")
	fs.Float64("rate-limit", 0, "requests per second per client, 0 disables limiting")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		return err
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: "event-api-stub",
		Development: cfg.Log.Development,
		OutputPath:  cfg.Log.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    "event-api-stub",
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		return fmt.Errorf("failed to init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	store := stubserver.NewMemoryEventStore()
	if cfg.Stub.Seed {
		if err := store.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed events: %w", err)
		}
		log.Info("sample events loaded", zap.Int("count", store.Len()))
	}

	// serve at the same path the client is configured to call
	endpoint, err := cfg.API.Endpoint()
	if err != nil {
		return err
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}

	srvCfg := stubserver.Config{
		Addr:        cfg.Stub.Addr(),
		Path:        u.Path,
		ServiceName: "event-api-stub",
		Release:     cfg.IsProduction(),
		RateLimit:   stubserver.RateLimitConfig{
			RequestsPerSecond: cfg.Stub.RateLimit,
			Burst:             cfg.Stub.Burst,
		},
	}
	router := stubserver.NewRouter(srvCfg, store, log)
	return stubserver.NewServer(srvCfg, router, log).Run(ctx)
}
