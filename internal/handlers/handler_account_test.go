package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
	"github.com/pixbank-app/pixbank-backend/internal/handlers"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, email string, req dto.UpdateAccountRequest, requesterID string) (*domain.Account, error) {
	args := m.Called(ctx, email, req, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetBalance(ctx context.Context, accountID string, requesterID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, requesterID)
	if args.Get(0) == nil {
		return decimal.Decimal{}, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, email string, requesterID string) error {
	args := m.Called(ctx, email, requesterID)
	return args.Error(0)
}
func (m *MockAccountService) VerifyCredentials(ctx context.Context, email string, password string) (*domain.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) StoreRefreshToken(ctx context.Context, accountID string, rawToken string, expiry time.Time) error {
	args := m.Called(ctx, accountID, rawToken, expiry)
	return args.Error(0)
}
func (m *MockAccountService) ClearRefreshToken(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a signed JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(accountID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pixbank-test",
		Subject:   accountID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	handlers.RegisterCustomValidators()

	suite.mockAccountService = new(MockAccountService)

	// The registration wires the auth middleware on everything except sign-up.
	handlers.RegisterAccountRoutes(suite.router, suite.jwtSecret, suite.mockAccountService)
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	now := time.Now()
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		Email:       "maria@example.com",
		Name:        "Maria Souza",
		Phone:       "11987654321",
		Occupation:  "Engenheira",
		Address:     "Rua das Flores 100",
		AccountType: domain.Individual,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Email == "maria@example.com" && req.AccountType == "PF"
		}),
	).Return(created, nil).Once()

	body := map[string]string{
		"email":    "maria@example.com",
		"telefone": "11987654321",
		"nome":     "Maria Souza",
		"ocupacao": "Engenheira",
		"endereco": "Rua das Flores 100",
		"tipo":     "PF",
		"password": "s3nh4-muito-boa",
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(created.AccountID, responseBody.AccountID)
	suite.Equal("maria@example.com", responseBody.Email)
	suite.Equal("PF", responseBody.AccountType)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidPhoneRejectedBeforeService() {
	body := map[string]string{
		"email":    "maria@example.com",
		"telefone": "1198",
		"nome":     "Maria Souza",
		"ocupacao": "Engenheira",
		"endereco": "Rua das Flores 100",
		"tipo":     "PF",
		"password": "s3nh4-muito-boa",
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateEmail() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	body := map[string]string{
		"email":    "maria@example.com",
		"telefone": "11987654321",
		"nome":     "Maria Souza",
		"ocupacao": "Engenheira",
		"endereco": "Rua das Flores 100",
		"tipo":     "PF",
		"password": "s3nh4-muito-boa",
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalance_Success() {
	accountID := uuid.NewString()
	balance := decimal.NewFromFloat(70.50)

	suite.mockAccountService.On("GetBalance",
		mock.AnythingOfType("*context.valueCtx"), // context carries values from middleware
		accountID,
		accountID,
	).Return(balance, nil).Once()

	url := fmt.Sprintf("/accounts/%s/saldo", accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(accountID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.BalanceResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(accountID, responseBody.AccountID)
	suite.True(balance.Equal(responseBody.Balance))

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalance_ForbiddenForOtherAccount() {
	accountID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockAccountService.On("GetBalance",
		mock.AnythingOfType("*context.valueCtx"),
		accountID,
		requesterID,
	).Return(nil, apperrors.ErrForbidden).Once()

	url := fmt.Sprintf("/accounts/%s/saldo", accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requesterID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalance_MissingToken() {
	url := fmt.Sprintf("/accounts/%s/saldo", uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetBalance")
}

func (suite *AccountHandlerTestSuite) TestGetAccountByEmail_NotFound() {
	requesterID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByEmail",
		mock.AnythingOfType("*context.valueCtx"),
		"nobody@example.com",
	).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/accounts/email/nobody@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requesterID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_PartialUpdate() {
	accountID := uuid.NewString()
	now := time.Now()
	newName := "Maria S. Lima"
	updated := &domain.Account{
		AccountID:   accountID,
		Email:       "maria@example.com",
		Name:        newName,
		Phone:       "11987654321",
		Occupation:  "Engenheira",
		Address:     "Rua das Flores 100",
		AccountType: domain.Individual,
		AuditFields: domain.AuditFields{CreatedAt: now.Add(-24 * time.Hour), LastUpdatedAt: now},
	}

	suite.mockAccountService.On("UpdateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		"maria@example.com",
		mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
			return req.Name != nil && *req.Name == newName && req.Email == nil
		}),
		accountID,
	).Return(updated, nil).Once()

	payload, _ := json.Marshal(map[string]string{"nome": newName})
	req, _ := http.NewRequest(http.MethodPatch, "/accounts/maria@example.com", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(accountID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(newName, responseBody.Name)

	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
