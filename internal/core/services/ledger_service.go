package services

import (
	"context"
	"log/slog"

	"github.com/pixbank-app/pixbank-backend/internal/apperrors"
	portsrepo "github.com/pixbank-app/pixbank-backend/internal/core/ports/repositories"
	portssvc "github.com/pixbank-app/pixbank-backend/internal/core/ports/services"
	"github.com/pixbank-app/pixbank-backend/internal/dto"
)

// Page size bounds for the bank statement.
const (
	defaultStatementLimit = 20
	maxStatementLimit     = 100
)

// ledgerService implements the LedgerSvcFacade interface.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListTransactionsForAccount(ctx context.Context, email string, requesterID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account.AccountID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultStatementLimit
	}
	if limit > maxStatementLimit {
		limit = maxStatementLimit
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, account.AccountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_id", account.AccountID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
