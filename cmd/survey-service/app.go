package main

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/config"
	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/metrics"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/repositories/memory"
	"github.com/SAP-F-2025/survey-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/SAP-F-2025/survey-service/internal/validator"
	"github.com/SAP-F-2025/survey-service/pkg"
)

// app holds the wired dependencies shared by every command
type app struct {
	cfg       *config.Config
	logger    utils.Logger
	repo      repositories.Repository
	publisher events.EventPublisher
	metrics   *metrics.Metrics
	services  services.ServiceManager

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := utils.NewLogger(cfg.IsProduction())
	slogger := utils.ToSlogLogger(logger)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	repo, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.repo = repo

	guard := cache.NewNoopSessionGuard()
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		// Duplicate protection falls back to the store's unique session constraint.
		logger.Warn("Redis unavailable, submission guard disabled", "error", err)
	} else if redisClient != nil {
		a.closers = append(a.closers, redisClient.Close)
		guard = cache.NewRedisSessionGuard(redisClient, cfg.SubmissionGuardTTL, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}
	a.publisher = publisher
	a.closers = append(a.closers, publisher.Close)

	a.services = services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Guard:     guard,
		Publisher: publisher,
		Metrics:   a.metrics,
		Logger:    slogger,
		Validator: validator.New(),
		Survey: services.SurveyInfo{
			Title:       cfg.SurveyTitle,
			Description: cfg.SurveyDescription,
		},
		InvitedPopulation: cfg.InvitedPopulation,
	})

	return a, nil
}

func (a *app) openStore() (repositories.Repository, error) {
	switch a.cfg.StoreDriver {
	case config.StoreDriverMemory:
		a.logger.Warn("Using in-memory response store, responses are lost on restart")
		return memory.NewRepository(), nil
	case config.StoreDriverPostgres:
		db, err := pkg.InitDatabase(a.cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		return postgres.NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", a.cfg.StoreDriver)
	}
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to release resource", "error", err)
		}
	}
	a.closers = nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
