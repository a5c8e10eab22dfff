package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

// LedgerRepository defines persistence operations for the append-only
// transaction ledger and the atomic transfer write.
type LedgerRepository interface {
	// ExecuteTransfer applies a validated transfer within a single database
	// transaction: both account rows are locked in ascending account-ID order,
	// the source balance is re-checked under the lock, both balances are
	// mutated and both ledger entries inserted. All four writes succeed or
	// none do. Returns the resulting balance per account ID.
	// Fails with apperrors.ErrInsufficientFunds if the re-check fails.
	ExecuteTransfer(ctx context.Context, transfer domain.Transfer, debit domain.Transaction, credit domain.Transaction) (map[string]decimal.Decimal, error)

	// ListTransactionsByAccountID returns ledger entries for an account
	// ordered by creation time descending, with token-based pagination. The
	// second return value is the cursor for the next page, nil on the last one.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
