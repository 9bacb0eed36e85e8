package repositories

// RepositoryProvider bundles every repository for service construction.
type RepositoryProvider struct {
	LedgerRepo    LedgerRepository
	MenuRepo      MenuRepository
	OrderRepo     OrderRepository
	InventoryRepo InventoryRepository
	PartyRepo     PartyRepository
	BillingRepo   BillingRepository
	StaffRepo     StaffRepository
}
