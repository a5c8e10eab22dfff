package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/platform/config"
	"github.com/pixbank-app/pixbank-backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh
// tokens. It needs the configuration for secrets and expiry times, and the
// account service to look up stored refresh token hashes.
type tokenService struct {
	cfg            *config.Config
	accountService portssvc.AccountSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, accountService portssvc.AccountSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:            cfg,
		accountService: accountService,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given account.
func (s *tokenService) GenerateAccessToken(ctx context.Context, account *domain.Account) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(account.AccountID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token for the given
// account. Only the hash of the returned value is ever persisted.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, account *domain.Account) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken checks a raw refresh token against the stored
// hash for the account. Expired or mismatched tokens fail with
// ErrRefreshTokenExpired / ErrUnauthorized.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, accountID string, refreshToken string) (*domain.Account, error) {
	account, err := s.accountService.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	if account.RefreshTokenHash == nil || account.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*account.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, *account.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return account, nil
}
