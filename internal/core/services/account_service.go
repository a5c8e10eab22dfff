package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
	"github.com/pixbank-app/pixbank-backend/internal/utils"
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	accountType := domain.AccountType(req.AccountType)
	if !accountType.Valid() {
		return nil, fmt.Errorf("invalid account type %q: %w", req.AccountType, apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Occupation:   req.Occupation,
		Address:      req.Address,
		AccountType:  accountType,
		PhotoURL:     req.PhotoURL,
		Balance:      decimal.Zero,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Signup rejected, email already registered", slog.String("email", req.Email))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by email", slog.String("email", email))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, email string, req dto.UpdateAccountRequest, requesterID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account.AccountID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	// Apply only the fields present in the request. Balance and password are
	// not reachable through this path.
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Occupation != nil {
		account.Occupation = *req.Occupation
	}
	if req.Address != nil {
		account.Address = *req.Address
	}
	if req.PhotoURL != nil {
		account.PhotoURL = *req.PhotoURL
	}
	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) GetBalance(ctx context.Context, accountID string, requesterID string) (decimal.Decimal, error) {
	if accountID != requesterID {
		return decimal.Zero, apperrors.ErrForbidden
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, email string, requesterID string) error {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.AccountID != requesterID {
		return apperrors.ErrForbidden
	}

	if err := s.accountRepo.DeleteAccount(ctx, account.AccountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", account.AccountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", account.AccountID))
	return nil
}

func (s *accountService) VerifyCredentials(ctx context.Context, email string, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so login failures don't reveal
			// which emails are registered.
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to fetch account for credential check", slog.String("email", email))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("account_id", account.AccountID))
		return nil, apperrors.ErrUnauthorized
	}

	return account, nil
}

func (s *accountService) StoreRefreshToken(ctx context.Context, accountID string, rawToken string, expiry time.Time) error {
	tokenHash := utils.HashRefreshToken(rawToken)
	if err := s.accountRepo.UpdateRefreshToken(ctx, accountID, &tokenHash, &expiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token hash", slog.String("account_id", accountID))
		return err
	}
	return nil
}

func (s *accountService) ClearRefreshToken(ctx context.Context, accountID string) error {
	if err := s.accountRepo.UpdateRefreshToken(ctx, accountID, nil, nil); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("account_id", accountID))
		return err
	}
	return nil
}
