package services

import (
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.PixKey = NewPixKeyService(repos.PixKeyRepo, repos.AccountRepo)
	container.Transfer = NewTransferService(repos.AccountRepo, repos.PixKeyRepo, repos.LedgerRepo, cfg.StoreTimeout)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Token = NewTokenService(cfg, container.Account)

	return container
}
