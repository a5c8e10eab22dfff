package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	"github.com/pixbank-app/pixbank-backend/internal/models"
	"github.com/pixbank-app/pixbank-backend/internal/utils/mapping"
)

// accountColumns is the canonical column list shared by the account queries.
const accountColumns = `account_id, email, name, phone, occupation, address, account_type, photo_url, balance, password_hash, created_at, last_updated_at, refresh_token_hash, refresh_token_expiry_time`

// lockAccountsForUpdateQuery locks the selected rows FOR UPDATE. The ORDER BY
// is what fixes the lock acquisition order: an `= ANY` scan on its own visits
// rows in plan-dependent order, and opposing transfers between the same pair
// of accounts could then lock in opposite order and deadlock.
const lockAccountsForUpdateQuery = `
	SELECT ` + accountColumns + `
	FROM accounts
	WHERE account_id = ANY($1)
	ORDER BY account_id
	FOR UPDATE;
`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccountRow(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Email,
		&m.Name,
		&m.Phone,
		&m.Occupation,
		&m.Address,
		&m.AccountType,
		&m.PhotoURL,
		&m.Balance,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Email,
		m.Name,
		m.Phone,
		m.Occupation,
		m.Address,
		m.AccountType,
		m.PhotoURL,
		m.Balance,
		m.PasswordHash,
		m.CreatedAt,
		m.LastUpdatedAt,
		m.RefreshTokenHash,
		m.RefreshTokenExpiryTime,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*domain.Account, error) {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

		m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
		}

		account := mapping.ToDomainAccount(*m)
		return &account, nil
	})
}

// FindAccountByEmail retrieves an account through the unique email index.
func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*domain.Account, error) {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1;`

		m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, email))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to find account by email: %w", err)
		}

		account := mapping.ToDomainAccount(*m)
		return &account, nil
	})
}

// UpdateAccount persists the mutable profile fields of an existing account.
// Balance, password hash and refresh token state are not written here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET email = $2, name = $3, phone = $4, occupation = $5, address = $6, photo_url = $7, last_updated_at = $8
		WHERE account_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Email,
		m.Name,
		m.Phone,
		m.Occupation,
		m.Address,
		m.PhotoURL,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores (or clears, with nils) the refresh token hash and
// expiry for an account.
func (r *PgxAccountRepository) UpdateRefreshToken(ctx context.Context, accountID string, tokenHash *string, expiry *time.Time) error {
	query := `
		UPDATE accounts
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3, last_updated_at = $4
		WHERE account_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, accountID, tokenHash, expiry, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update refresh token for account %s: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes the account row. PIX keys and ledger entries cascade
// through their foreign keys.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`

	ct, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Must be called within a transaction. Locks are acquired in
// ascending account_id order regardless of the order of the input IDs.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	rows, err := tx.Query(ctx, lockAccountsForUpdateQuery, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: accounts %v not found during lock", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within
// a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	return batchErr
}
