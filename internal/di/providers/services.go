package providers

import (
	"github.com/samber/do/v2"

	"github.com/reelpulse/reelpulse/internal/config"
	"github.com/reelpulse/reelpulse/internal/logger"
	"github.com/reelpulse/reelpulse/internal/service"
)

// ProvideSnapshotService provides the export run service.
func ProvideSnapshotService(i do.Injector) (*service.SnapshotService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*TMDBClientHandle](i)
	archive := do.MustInvoke[*ArchiveHandle](i)

	return service.NewSnapshotService(client.Client, archive.Archiver, cfg.Output.DataDir, log.Logger), nil
}
