// Package di provides dependency injection configuration for reelpulse.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reelpulse/reelpulse/internal/config"
	"github.com/reelpulse/reelpulse/internal/di/providers"
	"github.com/reelpulse/reelpulse/internal/logger"
	"github.com/reelpulse/reelpulse/internal/service"
)

// NewContainer creates the DI container for a run configured by cfg.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)

	// Clients and storage
	do.Provide(injector, providers.ProvideTMDBClient)
	do.Provide(injector, providers.ProvideArchive)

	// Services
	do.Provide(injector, providers.ProvideSnapshotService)

	return injector
}

// Bootstrap initializes every service so that setup failures surface before
// any request is made.
func Bootstrap(injector *do.RootScope) (*service.SnapshotService, *logger.Logger, error) {
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, nil, err
	}
	svc, err := do.Invoke[*service.SnapshotService](injector)
	if err != nil {
		return nil, log, err
	}
	return svc, log, nil
}
