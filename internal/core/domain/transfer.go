package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferState tracks the progress of a PIX transfer. Transfers advance
// Validated -> Debited -> Credited -> Committed; any failure before commit
// moves the transfer to Failed with no partial writes visible.
type TransferState string

const (
	TransferValidated TransferState = "VALIDATED"
	TransferDebited   TransferState = "DEBITED"
	TransferCredited  TransferState = "CREDITED"
	TransferCommitted TransferState = "COMMITTED"
	TransferFailed    TransferState = "FAILED"
)

// Transfer is the derived record of a PIX transfer between two accounts.
// It is not persisted as its own entity: a committed transfer materializes as
// exactly two Transaction rows, a debit on the sender and a credit on the
// receiver.
type Transfer struct {
	FromAccountID       string          `json:"fromAccountID"`
	ToAccountID         string          `json:"toAccountID"`
	Amount              decimal.Decimal `json:"amount"`
	State               TransferState   `json:"state"`
	DebitTransactionID  string          `json:"debitTransactionID"`
	CreditTransactionID string          `json:"creditTransactionID"`
	CompletedAt         time.Time       `json:"completedAt"`
}

// LockOrder returns the two account IDs in the fixed order their rows must be
// locked in, ascending by ID regardless of transfer direction, so that two
// concurrent transfers between the same pair of accounts cannot deadlock.
func (t Transfer) LockOrder() [2]string {
	if t.FromAccountID <= t.ToAccountID {
		return [2]string{t.FromAccountID, t.ToAccountID}
	}
	return [2]string{t.ToAccountID, t.FromAccountID}
}
