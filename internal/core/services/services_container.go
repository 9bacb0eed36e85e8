package services

import (
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories. The
// accounting service is built first since orders and billing post through it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Accounting = NewAccountingService(repos.LedgerRepo)
	container.Menu = NewMenuService(repos.MenuRepo)
	container.Order = NewOrderService(repos.OrderRepo, repos.MenuRepo, container.Accounting, cfg.VATRate, cfg.AccountRoles)
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.Party = NewPartyService(repos.PartyRepo)
	container.Billing = NewBillingService(repos.BillingRepo, repos.PartyRepo, container.Accounting)
	container.Auth = NewAuthService(repos.StaffRepo, cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
