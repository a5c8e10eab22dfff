package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether a ledger entry credits or debits an account.
type TransactionDirection string

const (
	Debit  TransactionDirection = "DEBIT"
	Credit TransactionDirection = "CREDIT"
)

// Transaction is a single append-only ledger entry affecting one account.
// Entries are produced exactly once per balance-affecting event and are never
// updated or deleted.
type Transaction struct {
	TransactionID string               `json:"transactionID"` // Primary key (UUID)
	AccountID     string               `json:"accountID"`
	Direction     TransactionDirection `json:"direction"`
	Amount        decimal.Decimal      `json:"amount"` // Always positive
	Description   string               `json:"description"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// Validate checks the structural invariants of a ledger entry.
func (t Transaction) Validate() error {
	if t.TransactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.AccountID == "" {
		return fmt.Errorf("account ID is required")
	}
	if t.Direction != Debit && t.Direction != Credit {
		return fmt.Errorf("direction must be DEBIT or CREDIT")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
