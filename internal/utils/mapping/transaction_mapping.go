package mapping

import (
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	"github.com/pixbank-app/pixbank-backend/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its DB representation.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Direction:     models.TransactionDirection(d.Direction),
		Amount:        d.Amount,
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a DB ledger row to its domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Direction:     domain.TransactionDirection(m.Direction),
		Amount:        m.Amount,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of DB ledger rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
