package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/reelpulse/reelpulse/internal/config"
	"github.com/reelpulse/reelpulse/internal/logger"
	"github.com/reelpulse/reelpulse/internal/store"
	"github.com/reelpulse/reelpulse/internal/store/sqlite"
)

// ArchiveHandle wraps the run archive with shutdown capability. Without a
// configured database it holds a no-op archiver.
type ArchiveHandle struct {
	store.Archiver
	db *sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *ArchiveHandle) Shutdown() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// ProvideArchive provides the run archive.
func ProvideArchive(i do.Injector) (*ArchiveHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Archive.Path == "" {
		log.Debug("Run archive disabled")
		return &ArchiveHandle{Archiver: store.NewNoopArchiver()}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Archive.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sqlite.Open(cfg.Archive.Path, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open run archive: %w", err)
	}

	log.Info("Run archive opened", "path", cfg.Archive.Path)

	return &ArchiveHandle{Archiver: db, db: db}, nil
}
