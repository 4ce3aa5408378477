// Package providers contains dependency injection providers for reelpulse.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelpulse/reelpulse/internal/config"
	"github.com/reelpulse/reelpulse/internal/logger"
)

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development" && cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
		NoColor:     cfg.Logger.NoColor,
	})

	log.Info("Starting reelpulse",
		"command", cfg.App.Command,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.Output.DataDir,
	)

	return log, nil
}
