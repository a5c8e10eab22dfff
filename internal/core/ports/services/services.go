package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to handlers.
// requesterID is the account ID bound to the caller's bearer token; operations
// on another account fail with apperrors.ErrForbidden.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, email string, req dto.UpdateAccountRequest, requesterID string) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID string, requesterID string) (decimal.Decimal, error)
	DeleteAccount(ctx context.Context, email string, requesterID string) error

	// VerifyCredentials checks email/password and returns the account on
	// success; fails with apperrors.ErrUnauthorized on any mismatch.
	VerifyCredentials(ctx context.Context, email string, password string) (*domain.Account, error)
	// StoreRefreshToken persists the hash of a freshly issued refresh token.
	StoreRefreshToken(ctx context.Context, accountID string, rawToken string, expiry time.Time) error
	// ClearRefreshToken revokes any outstanding refresh token.
	ClearRefreshToken(ctx context.Context, accountID string) error
}

// PixKeySvcFacade defines the PIX key operations exposed to handlers.
type PixKeySvcFacade interface {
	CreatePixKey(ctx context.Context, email string, req dto.CreatePixKeyRequest, requesterID string) (*domain.PixKey, error)
	ListPixKeys(ctx context.Context, email string, requesterID string) ([]domain.PixKey, error)
	DeletePixKey(ctx context.Context, email string, pixKeyID string, requesterID string) error
}

// TransferSvcFacade defines the PIX transfer operation.
type TransferSvcFacade interface {
	SendPix(ctx context.Context, requesterID string, req dto.SendPixRequest) (*dto.TransferConfirmation, error)
}

// LedgerSvcFacade defines read access to the transaction ledger.
type LedgerSvcFacade interface {
	ListTransactionsForAccount(ctx context.Context, email string, requesterID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TokenSvcFacade handles access and refresh token lifecycles.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, account *domain.Account) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, account *domain.Account) (string, time.Time, error)
	// ValidateAndParseRefreshToken checks a raw refresh token against the
	// stored hash for the account and returns the account when valid.
	ValidateAndParseRefreshToken(ctx context.Context, accountID string, refreshToken string) (*domain.Account, error)
}

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Account  AccountSvcFacade
	PixKey   PixKeySvcFacade
	Transfer TransferSvcFacade
	Ledger   LedgerSvcFacade
	Token    TokenSvcFacade
}
