package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelpulse/reelpulse/internal/config"
	"github.com/reelpulse/reelpulse/internal/logger"
	"github.com/reelpulse/reelpulse/internal/metadata/tmdb"
)

// TMDBClientHandle wraps the TMDB client with shutdown capability.
type TMDBClientHandle struct {
	*tmdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *TMDBClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideTMDBClient provides the TMDB API client.
func ProvideTMDBClient(i do.Injector) (*TMDBClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := tmdb.New(tmdb.Options{
		Token:   cfg.TMDB.Token,
		BaseURL: cfg.TMDB.BaseURL,
		Timeout: cfg.TMDB.Timeout,
		MaxRPS:  cfg.TMDB.MaxRPS,
	}, log.Logger)

	log.Info("TMDB client initialized",
		"base_url", cfg.TMDB.BaseURL,
		"timeout", cfg.TMDB.Timeout,
		"max_rps", cfg.TMDB.MaxRPS,
	)

	return &TMDBClientHandle{Client: client}, nil
}
