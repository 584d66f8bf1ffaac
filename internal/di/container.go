package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/repository"
	"github.com/prohmpiriya/event-management/internal/transport"
	"github.com/prohmpiriya/event-management/internal/viewmodel"
	"github.com/prohmpiriya/event-management/pkg/config"
	"github.com/prohmpiriya/event-management/pkg/logger"
	"github.com/prohmpiriya/event-management/pkg/telemetry"
)

// Container holds all dependencies of the event client
type Container struct {
	Config *config.Config

	// Infrastructure
	Logger    *logger.Logger
	Telemetry *telemetry.Telemetry
	Metrics   *telemetry.ClientMetrics
	Client    *transport.Client

	// Repositories
	EventRepo repository.EventRepository

	// View models
	EventViewModel *viewmodel.EventViewModel
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	// Logger overrides the logger built from Config.Log
	Logger *logger.Logger
	// EventRepo overrides the HTTP repository
	EventRepo repository.EventRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *ContainerConfig) (*Container, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("di: config is required")
	}
	appCfg := cfg.Config

	c := &Container{Config: appCfg, Logger: cfg.Logger}

	// Initialize logger
	if c.Logger == nil {
		log, err := logger.New(&logger.Config{
			Level:       appCfg.Log.Level,
			ServiceName: appCfg.App.Name,
			Development: appCfg.Log.Development,
			OutputPath:  appCfg.Log.OutputPath,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		c.Logger = log
	}

	// Initialize telemetry
	tel, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        appCfg.OTel.Enabled,
		ServiceName:    appCfg.OTel.ServiceName,
		ServiceVersion: appCfg.App.Version,
		Environment:    appCfg.App.Environment,
		CollectorAddr:  appCfg.OTel.CollectorAddr,
		SampleRatio:    appCfg.OTel.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init telemetry: %w", err)
	}
	c.Telemetry = tel

	c.Metrics, err = telemetry.NewClientMetrics(tel.Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create client metrics: %w", err)
	}

	// Initialize repositories
	c.EventRepo = cfg.EventRepo
	if c.EventRepo == nil {
		endpoint, err := appCfg.API.Endpoint()
		if err != nil {
			return nil, err
		}
		c.Client, err = transport.New(transport.Config{
			Endpoint:       endpoint,
			ConnectTimeout: appCfg.API.ConnectTimeout,
			ReadTimeout:    appCfg.API.ReadTimeout,
			WriteTimeout:   appCfg.API.WriteTimeout,
			UserAgent:      appCfg.API.UserAgent,
		}, c.Logger, c.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
		c.EventRepo = repository.NewHTTPEventRepository(c.Client, c.Logger)
	}

	// Initialize view models
	c.EventViewModel = viewmodel.NewEventViewModel(c.EventRepo,
		viewmodel.WithLocale(domain.ParseLocale(appCfg.App.Locale)),
		viewmodel.WithLogger(c.Logger),
	)

	return c, nil
}

// Close waits for in-flight actions, flushes telemetry and syncs the logger
func (c *Container) Close(ctx context.Context) error {
	if c.EventViewModel != nil {
		c.EventViewModel.Wait()
	}

	var errs []error
	if err := telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
	}
	// Sync on stderr returns EINVAL on some terminals
	_ = c.Logger.Sync()

	return errors.Join(errs...)
}
