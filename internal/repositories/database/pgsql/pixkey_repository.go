package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	"github.com/pixbank-app/pixbank-backend/internal/models"
	"github.com/pixbank-app/pixbank-backend/internal/utils/mapping"
)

type PgxPixKeyRepository struct {
	BaseRepository
}

// newPgxPixKeyRepository creates a new repository for PIX key data.
func newPgxPixKeyRepository(pool *pgxpool.Pool) portsrepo.PixKeyRepository {
	return &PgxPixKeyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPixKeyRepository implements portsrepo.PixKeyRepository
var _ portsrepo.PixKeyRepository = (*PgxPixKeyRepository)(nil)

// SavePixKey inserts a new PIX key. The key_value column carries a unique
// index across all accounts.
func (r *PgxPixKeyRepository) SavePixKey(ctx context.Context, key domain.PixKey) error {
	m := mapping.ToModelPixKey(key)

	query := `
		INSERT INTO pix_keys (pix_key_id, account_id, key_type, key_value, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PixKeyID,
		m.AccountID,
		m.KeyType,
		m.KeyValue,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: PIX key value already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save PIX key %s: %w", m.PixKeyID, err)
	}
	return nil
}

// FindPixKeyByID retrieves a PIX key by its ID.
func (r *PgxPixKeyRepository) FindPixKeyByID(ctx context.Context, pixKeyID string) (*domain.PixKey, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*domain.PixKey, error) {
		query := `
			SELECT pix_key_id, account_id, key_type, key_value, created_at
			FROM pix_keys
			WHERE pix_key_id = $1;
		`
		var m models.PixKey
		err := r.Pool.QueryRow(ctx, query, pixKeyID).Scan(
			&m.PixKeyID,
			&m.AccountID,
			&m.KeyType,
			&m.KeyValue,
			&m.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to find PIX key %s: %w", pixKeyID, err)
		}

		key := mapping.ToDomainPixKey(m)
		return &key, nil
	})
}

// FindPixKeyByValue retrieves a PIX key by its system-wide unique value.
func (r *PgxPixKeyRepository) FindPixKeyByValue(ctx context.Context, keyValue string) (*domain.PixKey, error) {
	return readWithRetry(ctx, func(ctx context.Context) (*domain.PixKey, error) {
		query := `
			SELECT pix_key_id, account_id, key_type, key_value, created_at
			FROM pix_keys
			WHERE key_value = $1;
		`
		var m models.PixKey
		err := r.Pool.QueryRow(ctx, query, keyValue).Scan(
			&m.PixKeyID,
			&m.AccountID,
			&m.KeyType,
			&m.KeyValue,
			&m.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to find PIX key by value: %w", err)
		}

		key := mapping.ToDomainPixKey(m)
		return &key, nil
	})
}

// ListPixKeysByAccountID returns all PIX keys of an account ordered by
// creation time.
func (r *PgxPixKeyRepository) ListPixKeysByAccountID(ctx context.Context, accountID string) ([]domain.PixKey, error) {
	return readWithRetry(ctx, func(ctx context.Context) ([]domain.PixKey, error) {
		query := `
			SELECT pix_key_id, account_id, key_type, key_value, created_at
			FROM pix_keys
			WHERE account_id = $1
			ORDER BY created_at ASC, pix_key_id ASC;
		`
		rows, err := r.Pool.Query(ctx, query, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to list PIX keys for account %s: %w", accountID, err)
		}
		defer rows.Close()

		var keys []models.PixKey
		for rows.Next() {
			var m models.PixKey
			if err := rows.Scan(&m.PixKeyID, &m.AccountID, &m.KeyType, &m.KeyValue, &m.CreatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan PIX key row: %w", err)
			}
			keys = append(keys, m)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating PIX key rows: %w", err)
		}

		return mapping.ToDomainPixKeySlice(keys), nil
	})
}

// DeletePixKey removes a PIX key by its ID.
func (r *PgxPixKeyRepository) DeletePixKey(ctx context.Context, pixKeyID string) error {
	query := `DELETE FROM pix_keys WHERE pix_key_id = $1;`

	ct, err := r.Pool.Exec(ctx, query, pixKeyID)
	if err != nil {
		return fmt.Errorf("failed to delete PIX key %s: %w", pixKeyID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
