package repositories

import (
	"context"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

// PixKeyRepository defines persistence operations for PIX keys.
type PixKeyRepository interface {
	// SavePixKey inserts a new key. Returns apperrors.ErrDuplicate if the key
	// value is already registered to any account.
	SavePixKey(ctx context.Context, key domain.PixKey) error
	// FindPixKeyByID retrieves a key by its ID.
	FindPixKeyByID(ctx context.Context, pixKeyID string) (*domain.PixKey, error)
	// FindPixKeyByValue retrieves a key by its system-wide unique value.
	FindPixKeyByValue(ctx context.Context, keyValue string) (*domain.PixKey, error)
	// ListPixKeysByAccountID returns all keys of an account ordered by creation time.
	ListPixKeysByAccountID(ctx context.Context, accountID string) ([]domain.PixKey, error)
	// DeletePixKey removes a key by its ID.
	DeletePixKey(ctx context.Context, pixKeyID string) error
}
