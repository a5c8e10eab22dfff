package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection mirrors domain.TransactionDirection at the storage layer.
type TransactionDirection string

// Transaction is the DB representation of an append-only ledger entry.
type Transaction struct {
	TransactionID string               `db:"transaction_id"`
	AccountID     string               `db:"account_id"`
	Direction     TransactionDirection `db:"direction"`
	Amount        decimal.Decimal      `db:"amount"`
	Description   string               `db:"description"`
	CreatedAt     time.Time            `db:"created_at"`
}
