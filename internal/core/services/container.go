package services

import (
	portsrepo "github.com/parish-dms/parish_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/platform/config"
)

// NewServiceContainer creates and initializes all application services,
// injecting their dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Reference = NewReferenceService(repos.ReferenceRepo, cfg.ReferenceMaxRetries)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.DioceseRepo,
		container.Category,
		container.Reference,
		cfg.ReferencePrefix,
	)
	container.Pairing = NewPairingService(repos.TransactionRepo, repos.DioceseRepo, repos.AccountRepo, container.Category, container.Reference)
	container.Audit = NewAuditService(repos.TransactionRepo)
	container.Diocese = NewDioceseService(repos.DioceseRepo, repos.AccountRepo, container.Reference)

	return container
}
