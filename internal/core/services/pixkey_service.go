package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
	"github.com/pixbank-app/pixbank-backend/internal/utils"
)

var (
	cpfPattern   = regexp.MustCompile(`^[0-9]{11}$`)
	phonePattern = regexp.MustCompile(`^(\+55)?[0-9]{10,11}$`)
)

// randomKeyMaxAttempts bounds the retry loop when a generated random key
// collides with an existing one.
const randomKeyMaxAttempts = 3

// pixKeyService implements the PixKeySvcFacade interface.
type pixKeyService struct {
	BaseService
	pixKeyRepo  portsrepo.PixKeyRepository
	accountRepo portsrepo.AccountRepository
}

// NewPixKeyService creates a new PIX key service.
func NewPixKeyService(pixKeyRepo portsrepo.PixKeyRepository, accountRepo portsrepo.AccountRepository) portssvc.PixKeySvcFacade {
	return &pixKeyService{pixKeyRepo: pixKeyRepo, accountRepo: accountRepo}
}

var _ portssvc.PixKeySvcFacade = (*pixKeyService)(nil)

func (s *pixKeyService) CreatePixKey(ctx context.Context, email string, req dto.CreatePixKeyRequest, requesterID string) (*domain.PixKey, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account.AccountID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	keyType := domain.PixKeyType(req.Type)
	if !keyType.Valid() {
		return nil, fmt.Errorf("invalid PIX key type %q: %w", req.Type, apperrors.ErrValidation)
	}

	if keyType == domain.KeyTypeRandom {
		return s.createRandomKey(ctx, account.AccountID)
	}

	if err := validateKeyValue(keyType, req.Key); err != nil {
		return nil, err
	}

	key := domain.PixKey{
		PixKeyID:  uuid.NewString(),
		AccountID: account.AccountID,
		KeyType:   keyType,
		KeyValue:  req.Key,
		CreatedAt: time.Now(),
	}

	if err := s.pixKeyRepo.SavePixKey(ctx, key); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "PIX key value already registered", slog.String("key_type", req.Type))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save PIX key", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "PIX key registered",
		slog.String("pix_key_id", key.PixKeyID),
		slog.String("key_type", string(keyType)))
	return &key, nil
}

// createRandomKey generates a random key value server-side, retrying on the
// unlikely event of a value collision.
func (s *pixKeyService) createRandomKey(ctx context.Context, accountID string) (*domain.PixKey, error) {
	var lastErr error
	for attempt := 0; attempt < randomKeyMaxAttempts; attempt++ {
		value, err := utils.GenerateSecureRandomString(16)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random key value: %w", err)
		}

		key := domain.PixKey{
			PixKeyID:  uuid.NewString(),
			AccountID: accountID,
			KeyType:   domain.KeyTypeRandom,
			KeyValue:  value,
			CreatedAt: time.Now(),
		}

		err = s.pixKeyRepo.SavePixKey(ctx, key)
		if err == nil {
			s.LogInfo(ctx, "Random PIX key registered", slog.String("pix_key_id", key.PixKeyID))
			return &key, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save random PIX key", slog.String("account_id", accountID))
			return nil, err
		}
		lastErr = err
	}
	s.LogError(ctx, lastErr, "Exhausted random key generation attempts", slog.String("account_id", accountID))
	return nil, fmt.Errorf("failed to generate a unique random key: %w", lastErr)
}

func (s *pixKeyService) ListPixKeys(ctx context.Context, email string, requesterID string) ([]domain.PixKey, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account.AccountID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	keys, err := s.pixKeyRepo.ListPixKeysByAccountID(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list PIX keys", slog.String("account_id", account.AccountID))
		return nil, err
	}
	return keys, nil
}

func (s *pixKeyService) DeletePixKey(ctx context.Context, email string, pixKeyID string, requesterID string) error {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.AccountID != requesterID {
		return apperrors.ErrForbidden
	}

	key, err := s.pixKeyRepo.FindPixKeyByID(ctx, pixKeyID)
	if err != nil {
		return err
	}
	if key.AccountID != account.AccountID {
		// The key exists but belongs to another account; report NotFound so
		// the caller learns nothing about other accounts' keys.
		return apperrors.ErrNotFound
	}

	if err := s.pixKeyRepo.DeletePixKey(ctx, pixKeyID); err != nil {
		s.LogError(ctx, err, "Failed to delete PIX key", slog.String("pix_key_id", pixKeyID))
		return err
	}

	s.LogInfo(ctx, "PIX key deleted", slog.String("pix_key_id", pixKeyID))
	return nil
}

// validateKeyValue checks that a client-supplied key value matches the shape
// its declared type requires.
func validateKeyValue(keyType domain.PixKeyType, value string) error {
	switch keyType {
	case domain.KeyTypeCPF:
		if !cpfPattern.MatchString(value) {
			return fmt.Errorf("CPF key must be exactly 11 digits: %w", apperrors.ErrValidation)
		}
	case domain.KeyTypePhone:
		if !phonePattern.MatchString(value) {
			return fmt.Errorf("phone key must be 10 or 11 digits, with optional +55 prefix: %w", apperrors.ErrValidation)
		}
	case domain.KeyTypeEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Errorf("email key is not a valid address: %w", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("unsupported key type %q: %w", keyType, apperrors.ErrValidation)
	}
	return nil
}
