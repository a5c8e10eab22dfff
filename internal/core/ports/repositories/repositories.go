package repositories

// RepositoryProvider bundles the repository implementations required to build
// the service layer.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryWithTx
	PixKeyRepo  PixKeyRepository
	LedgerRepo  LedgerRepository
}
