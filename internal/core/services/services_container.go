package services

import (
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/platform/audit"
	"github.com/kelvinbaffour/branchledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Audit = audit.NewSlogPublisher()

	// Registry first: mapping provisioning and the posting engine both lean on it.
	container.Registry = NewRegistryService(repos.GLAccountRepo, repos.JournalRepo, container.Audit)

	container.Mapping = NewMappingService(
		repos.MappingRepo,
		repos.GLAccountRepo,
		repos.FloatRepo,
		container.Registry,
		container.Audit,
	)

	container.Posting = NewPostingService(
		repos.JournalRepo,
		repos.GLAccountRepo,
		container.Mapping,
		container.Registry,
		repos.FloatRepo,
		container.Audit,
	)

	container.Reversal = NewReversalService(
		repos.ReversalRepo,
		repos.JournalRepo,
		container.Posting,
		container.Audit,
		cfg.ReversalWindow,
	)

	container.Reconciliation = NewReconciliationService(
		repos.FloatRepo,
		container.Mapping,
		cfg.ReconEpsilon,
	)

	return container
}
