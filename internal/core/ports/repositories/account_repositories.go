package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate if the
	// email is already registered.
	SaveAccount(ctx context.Context, account domain.Account) error
	// FindAccountByID retrieves an account by its canonical ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountByEmail retrieves an account through the unique email index.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	// UpdateAccount persists mutable profile fields. Balance and password hash
	// are not written through this path.
	UpdateAccount(ctx context.Context, account domain.Account) error
	// UpdateRefreshToken stores (or clears, with nils) the refresh token hash
	// and expiry for an account.
	UpdateRefreshToken(ctx context.Context, accountID string, tokenHash *string, expiry *time.Time) error
	// DeleteAccount removes the account. PIX keys and ledger entries owned by
	// the account are removed with it.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryWithTx extends AccountRepository with the row-locking
// helpers the transfer path needs inside a database transaction.
type AccountRepositoryWithTx interface {
	AccountRepository

	// FindAccountsByIDsForUpdate retrieves the given accounts and locks their
	// rows FOR UPDATE in ascending account-ID order. Must be called within a
	// transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies balance deltas to the given accounts
	// within a transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}
