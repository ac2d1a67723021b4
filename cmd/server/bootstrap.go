package main

import (
	"context"

	"github.com/fynd/reviewboard/internal/config"
	"github.com/fynd/reviewboard/internal/handlers"
	"github.com/fynd/reviewboard/internal/models"
	"github.com/fynd/reviewboard/internal/services"
	"github.com/fynd/reviewboard/internal/store"
	"github.com/fynd/reviewboard/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the
// application.
type appServices struct {
	store            store.RecordStore
	reviewHandler    *handlers.ReviewHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap opens the record store and wires the pipeline, read side and
// handlers.
func bootstrap(cfg *config.Config) (*appServices, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	generator := services.NewAIService(&cfg.AI)
	intake := services.NewIntakeService(st, generator, nil, nil, cfg.TypedStatus())
	analytics := services.NewAnalyticsService(st, cfg.Moderation.ErrorFilter)

	return &appServices{
		store:            st,
		reviewHandler:    handlers.NewReviewHandler(intake, analytics),
		dashboardHandler: handlers.NewDashboardHandler(analytics),
		healthHandler:    handlers.NewHealthHandler(cfg.Store.Driver, cfg.Moderation.ErrorFilter),
	}, nil
}

// openStore builds the configured record-store backend. The handle is
// held for the process lifetime; contents are re-read on every view.
func openStore(cfg *config.Config) (store.RecordStore, error) {
	switch cfg.Store.Driver {
	case "csv":
		return store.NewCSVStore(cfg.Store.Path, cfg.TypedStatus())
	case "sheets":
		return store.NewSheetsStore(context.Background(), &cfg.Store, cfg.TypedStatus())
	default:
		db, err := models.OpenDB(&cfg.Store)
		if err != nil {
			return nil, err
		}
		return store.NewDBStore(db), nil
	}
}

func (s *appServices) shutdown() {
	if err := s.store.Close(); err != nil {
		logger.Warn().Err(err).Msg("store close failed")
	}
}
