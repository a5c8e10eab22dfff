package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	"github.com/pixbank-app/pixbank-backend/internal/models"
	"github.com/pixbank-app/pixbank-backend/internal/utils/mapping"
	"github.com/pixbank-app/pixbank-backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryWithTx
}

// newPgxLedgerRepository creates a new repository for ledger and transfer data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryWithTx) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// ExecuteTransfer applies a validated transfer inside a single database
// transaction. Both account rows are locked in the transfer's fixed lock
// order, the source balance is re-checked under the lock, then both balance
// updates and both ledger inserts happen or none do.
func (r *PgxLedgerRepository) ExecuteTransfer(ctx context.Context, transfer domain.Transfer, debit domain.Transaction, credit domain.Transaction) (map[string]decimal.Decimal, error) {
	if err := debit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid debit entry: %w", err)
	}
	if err := credit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credit entry: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock both rows in ascending account-ID order regardless of direction.
	lockOrder := transfer.LockOrder()
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, lockOrder[:])
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for transfer: %w", err)
	}

	// Authoritative funds check, now that the source row cannot change
	// underneath us.
	source := lockedAccounts[transfer.FromAccountID]
	if source.Balance.LessThan(transfer.Amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	balanceChanges := map[string]decimal.Decimal{
		transfer.FromAccountID: transfer.Amount.Neg(),
		transfer.ToAccountID:   transfer.Amount,
	}
	now := debit.CreatedAt
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, now); err != nil {
		return nil, fmt.Errorf("failed to update balances for transfer: %w", err)
	}

	txnQuery := `
		INSERT INTO transactions (transaction_id, account_id, direction, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, entry := range []domain.Transaction{debit, credit} {
		m := mapping.ToModelTransaction(entry)
		batch.Queue(txnQuery,
			m.TransactionID,
			m.AccountID,
			m.Direction,
			m.Amount,
			m.Description,
			m.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert ledger entries for transfer: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return map[string]decimal.Decimal{
		transfer.FromAccountID: source.Balance.Sub(transfer.Amount),
		transfer.ToAccountID:   lockedAccounts[transfer.ToAccountID].Balance.Add(transfer.Amount),
	}, nil
}

type ledgerPage struct {
	entries   []domain.Transaction
	nextToken *string
}

// ListTransactionsByAccountID retrieves a paginated list of ledger entries for
// an account using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	page, err := readWithRetry(ctx, func(ctx context.Context) (ledgerPage, error) {
		return r.listTransactionsPage(ctx, accountID, limit, nextToken)
	})
	if err != nil {
		return nil, nil, err
	}
	return page.entries, page.nextToken, nil
}

func (r *PgxLedgerRepository) listTransactionsPage(ctx context.Context, accountID string, limit int, nextToken *string) (ledgerPage, error) {
	query := `
		SELECT transaction_id, account_id, direction, amount, description, created_at
		FROM transactions
		WHERE account_id = $1
	`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastTxnID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return ledgerPage{}, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Keyset condition matching the DESC sort below.
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastTxnID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return ledgerPage{}, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var entries []models.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.AccountID, &m.Direction, &m.Amount, &m.Description, &m.CreatedAt); err != nil {
			return ledgerPage{}, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return ledgerPage{}, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
	}

	return ledgerPage{entries: mapping.ToDomainTransactionSlice(entries), nextToken: nextTokenVal}, nil
}
