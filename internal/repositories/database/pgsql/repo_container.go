package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgsql-backed repository on the shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:    NewLedgerRepository(pool),
		MenuRepo:      NewMenuRepository(pool),
		OrderRepo:     NewOrderRepository(pool),
		InventoryRepo: NewInventoryRepository(pool),
		PartyRepo:     NewPartyRepository(pool),
		BillingRepo:   NewBillingRepository(pool),
		StaffRepo:     NewStaffRepository(pool),
	}
}
