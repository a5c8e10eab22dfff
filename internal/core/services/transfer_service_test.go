package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/core/services"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockPixKeyRepo  *MockPixKeyRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.TransferSvcFacade

	source      *domain.Account
	destination *domain.Account
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPixKeyRepo = new(MockPixKeyRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewTransferService(suite.mockAccountRepo, suite.mockPixKeyRepo, suite.mockLedgerRepo, 5*time.Second)

	suite.source = &domain.Account{
		AccountID: "acc-source",
		Email:     "sender@example.com",
		Balance:   decimal.NewFromInt(100),
	}
	suite.destination = &domain.Account{
		AccountID: "acc-dest",
		Email:     "receiver@example.com",
		Balance:   decimal.NewFromInt(10),
	}
}

func (suite *TransferServiceTestSuite) sendRequest(amount decimal.Decimal) dto.SendPixRequest {
	return dto.SendPixRequest{
		FromEmail: suite.source.Email,
		ToEmail:   suite.destination.Email,
		Amount:    amount,
	}
}

func (suite *TransferServiceTestSuite) TestSendPix_CommitsWithTwoLedgerEntries() {
	amount := decimal.NewFromInt(30)

	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.destination.Email).Return(suite.destination, nil).Once()

	suite.mockLedgerRepo.On("ExecuteTransfer", mock.Anything,
		mock.MatchedBy(func(tr domain.Transfer) bool {
			return tr.FromAccountID == suite.source.AccountID &&
				tr.ToAccountID == suite.destination.AccountID &&
				tr.Amount.Equal(amount) &&
				tr.State == domain.TransferValidated
		}),
		mock.MatchedBy(func(debit domain.Transaction) bool {
			// Exactly one debit row against the sender, conserving the amount.
			return debit.AccountID == suite.source.AccountID &&
				debit.Direction == domain.Debit &&
				debit.Amount.Equal(amount)
		}),
		mock.MatchedBy(func(credit domain.Transaction) bool {
			return credit.AccountID == suite.destination.AccountID &&
				credit.Direction == domain.Credit &&
				credit.Amount.Equal(amount)
		}),
	).Return(map[string]decimal.Decimal{
		suite.source.AccountID:      decimal.NewFromInt(70),
		suite.destination.AccountID: decimal.NewFromInt(40),
	}, nil).Once()

	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, suite.sendRequest(amount))

	suite.Require().NoError(err)
	suite.Equal(string(domain.TransferCommitted), confirmation.State)
	suite.NotEmpty(confirmation.DebitTransactionID)
	suite.NotEmpty(confirmation.CreditTransactionID)
	suite.NotEqual(confirmation.DebitTransactionID, confirmation.CreditTransactionID)
	suite.True(confirmation.SourceBalance.Equal(decimal.NewFromInt(70)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestSendPix_NonPositiveAmountRejectedBeforeAnyLookup() {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, suite.sendRequest(amount))

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(confirmation)
	}
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByEmail", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestSendPix_InsufficientFundsRejectedWithoutStoreWrite() {
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.destination.Email).Return(suite.destination, nil).Once()

	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, suite.sendRequest(decimal.NewFromInt(1000)))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(confirmation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestSendPix_InsufficientFundsUnderLock() {
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.destination.Email).Return(suite.destination, nil).Once()

	// The pre-check passes but a concurrent debit drained the account before
	// the row lock was taken.
	suite.mockLedgerRepo.On("ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, suite.sendRequest(decimal.NewFromInt(50)))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(confirmation)
}

func (suite *TransferServiceTestSuite) TestSendPix_SelfTransferRejected() {
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Twice()

	req := dto.SendPixRequest{
		FromEmail: suite.source.Email,
		ToEmail:   suite.source.Email,
		Amount:    decimal.NewFromInt(10),
	}
	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransfer)
	suite.Nil(confirmation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestSendPix_ForbiddenWhenSourceNotCaller() {
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()

	confirmation, err := suite.service.SendPix(context.Background(), "acc-intruder", suite.sendRequest(decimal.NewFromInt(10)))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(confirmation)
}

func (suite *TransferServiceTestSuite) TestSendPix_ResolvesDestinationByKeyFirst() {
	amount := decimal.NewFromInt(25)
	key := &domain.PixKey{PixKeyID: "key-1", AccountID: suite.destination.AccountID, KeyType: domain.KeyTypeEmail, KeyValue: "receiver@example.com"}

	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()
	suite.mockPixKeyRepo.On("FindPixKeyByValue", mock.Anything, key.KeyValue).Return(key, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.destination.AccountID).Return(suite.destination, nil).Once()

	suite.mockLedgerRepo.On("ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]decimal.Decimal{
			suite.source.AccountID:      decimal.NewFromInt(75),
			suite.destination.AccountID: decimal.NewFromInt(35),
		}, nil).Once()

	req := dto.SendPixRequest{
		FromEmail: suite.source.Email,
		ToKey:     key.KeyValue,
		Amount:    amount,
	}
	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, req)

	suite.Require().NoError(err)
	suite.Equal(string(domain.TransferCommitted), confirmation.State)
	// The key lookup resolved the destination; no email lookup happened for it.
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindAccountByEmail", 1)
}

func (suite *TransferServiceTestSuite) TestSendPix_UnknownKeyFallsBackToEmail() {
	amount := decimal.NewFromInt(25)

	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()
	suite.mockPixKeyRepo.On("FindPixKeyByValue", mock.Anything, "no-such-key").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.destination.Email).Return(suite.destination, nil).Once()

	suite.mockLedgerRepo.On("ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]decimal.Decimal{
			suite.source.AccountID:      decimal.NewFromInt(75),
			suite.destination.AccountID: decimal.NewFromInt(35),
		}, nil).Once()

	req := dto.SendPixRequest{
		FromEmail: suite.source.Email,
		ToEmail:   suite.destination.Email,
		ToKey:     "no-such-key",
		Amount:    amount,
	}
	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, req)

	suite.Require().NoError(err)
	suite.NotNil(confirmation)
}

func (suite *TransferServiceTestSuite) TestSendPix_UnresolvedDestination() {
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, suite.source.Email).Return(suite.source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.SendPixRequest{
		FromEmail: suite.source.Email,
		ToEmail:   "ghost@example.com",
		Amount:    decimal.NewFromInt(10),
	}
	confirmation, err := suite.service.SendPix(context.Background(), suite.source.AccountID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDestinationNotFound)
	suite.Nil(confirmation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ExecuteTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
