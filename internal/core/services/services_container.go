package services

import (
	"log/slog"

	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The notifier is constructed first since the journal service emits
	// through it.
	container.Notifier = NewChangeNotifier(logger, cfg.NotifierBufferSize)

	container.Journal = NewJournalService(repos, container.Notifier, cfg.AllocatorMaxRetries)
	container.Master = NewMasterService(repos.MasterRepo)

	return container
}
