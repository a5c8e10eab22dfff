package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateRefreshToken(ctx context.Context, accountID string, tokenHash *string, expiry *time.Time) error {
	args := m.Called(ctx, accountID, tokenHash, expiry)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock PixKeyRepository ---

type MockPixKeyRepository struct {
	mock.Mock
}

func (m *MockPixKeyRepository) SavePixKey(ctx context.Context, key domain.PixKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockPixKeyRepository) FindPixKeyByID(ctx context.Context, pixKeyID string) (*domain.PixKey, error) {
	args := m.Called(ctx, pixKeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PixKey), args.Error(1)
}

func (m *MockPixKeyRepository) FindPixKeyByValue(ctx context.Context, keyValue string) (*domain.PixKey, error) {
	args := m.Called(ctx, keyValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PixKey), args.Error(1)
}

func (m *MockPixKeyRepository) ListPixKeysByAccountID(ctx context.Context, accountID string) ([]domain.PixKey, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PixKey), args.Error(1)
}

func (m *MockPixKeyRepository) DeletePixKey(ctx context.Context, pixKeyID string) error {
	args := m.Called(ctx, pixKeyID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ExecuteTransfer(ctx context.Context, transfer domain.Transfer, debit domain.Transaction, credit domain.Transaction) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, transfer, debit, credit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}
