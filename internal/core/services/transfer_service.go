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
)

// transferService implements the TransferSvcFacade interface. It orchestrates
// the transfer state machine; the atomic write itself lives in the ledger
// repository.
type transferService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	pixKeyRepo   portsrepo.PixKeyRepository
	ledgerRepo   portsrepo.LedgerRepository
	storeTimeout time.Duration
}

// NewTransferService creates a new transfer service. storeTimeout bounds the
// store interaction of each transfer; an expired deadline fails the transfer
// before any write becomes visible.
func NewTransferService(accountRepo portsrepo.AccountRepository, pixKeyRepo portsrepo.PixKeyRepository, ledgerRepo portsrepo.LedgerRepository, storeTimeout time.Duration) portssvc.TransferSvcFacade {
	return &transferService{
		accountRepo:  accountRepo,
		pixKeyRepo:   pixKeyRepo,
		ledgerRepo:   ledgerRepo,
		storeTimeout: storeTimeout,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) SendPix(ctx context.Context, requesterID string, req dto.SendPixRequest) (*dto.TransferConfirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transfer amount must be positive: %w", apperrors.ErrValidation)
	}

	source, err := s.accountRepo.FindAccountByEmail(ctx, req.FromEmail)
	if err != nil {
		return nil, err
	}
	if source.AccountID != requesterID {
		return nil, apperrors.ErrForbidden
	}

	destination, err := s.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}

	if destination.AccountID == source.AccountID {
		return nil, fmt.Errorf("source and destination are the same account: %w", apperrors.ErrInvalidTransfer)
	}

	// Early rejection without locks. The authoritative check happens again
	// under FOR UPDATE inside ExecuteTransfer.
	if source.Balance.LessThan(req.Amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	transfer := domain.Transfer{
		FromAccountID: source.AccountID,
		ToAccountID:   destination.AccountID,
		Amount:        req.Amount,
		State:         domain.TransferValidated,
	}

	description := req.Description
	if description == "" {
		description = "PIX"
	}
	now := time.Now()
	debit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     source.AccountID,
		Direction:     domain.Debit,
		Amount:        req.Amount,
		Description:   description,
		CreatedAt:     now,
	}
	credit := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     destination.AccountID,
		Direction:     domain.Credit,
		Amount:        req.Amount,
		Description:   description,
		CreatedAt:     now,
	}
	transfer.DebitTransactionID = debit.TransactionID
	transfer.CreditTransactionID = credit.TransactionID

	balances, err := s.ledgerRepo.ExecuteTransfer(ctx, transfer, debit, credit)
	if err != nil {
		transfer.State = domain.TransferFailed
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogDebug(ctx, "Transfer rejected under lock, insufficient funds",
				slog.String("from_account_id", source.AccountID))
			return nil, err
		}
		s.LogError(ctx, err, "Transfer failed",
			slog.String("from_account_id", source.AccountID),
			slog.String("to_account_id", destination.AccountID))
		return nil, err
	}

	transfer.State = domain.TransferCommitted
	transfer.CompletedAt = time.Now()

	s.LogInfo(ctx, "Transfer committed",
		slog.String("from_account_id", source.AccountID),
		slog.String("to_account_id", destination.AccountID),
		slog.String("amount", req.Amount.String()))

	return &dto.TransferConfirmation{
		State:               string(transfer.State),
		DebitTransactionID:  transfer.DebitTransactionID,
		CreditTransactionID: transfer.CreditTransactionID,
		Amount:              transfer.Amount,
		SourceBalance:       balances[source.AccountID],
		CompletedAt:         transfer.CompletedAt,
	}, nil
}

// resolveDestination finds the receiving account. A PIX key value takes
// precedence; the email is the fallback. A destination that cannot be
// resolved is reported as ErrDestinationNotFound, never plain NotFound, so
// the source of the failure is unambiguous to the caller.
func (s *transferService) resolveDestination(ctx context.Context, req dto.SendPixRequest) (*domain.Account, error) {
	if req.ToKey != "" {
		key, err := s.pixKeyRepo.FindPixKeyByValue(ctx, req.ToKey)
		if err == nil {
			return s.findDestinationAccount(ctx, key.AccountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		// Fall through to the email lookup when the key is unknown.
	}

	if req.ToEmail == "" {
		return nil, fmt.Errorf("no destination given: %w", apperrors.ErrDestinationNotFound)
	}

	account, err := s.accountRepo.FindAccountByEmail(ctx, req.ToEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrDestinationNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *transferService) findDestinationAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Key resolved but its account is gone; treat as an unresolved
			// destination rather than an internal inconsistency.
			return nil, apperrors.ErrDestinationNotFound
		}
		return nil, err
	}
	return account, nil
}
