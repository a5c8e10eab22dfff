package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SendPixRequest defines the payload for a PIX transfer. The destination is
// either a registered PIX key value or the receiving account's email; the key
// lookup is tried first.
type SendPixRequest struct {
	FromEmail   string          `json:"fromEmail" binding:"required,email"`
	ToEmail     string          `json:"toEmail" binding:"omitempty,email"`
	ToKey       string          `json:"toKey"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// TransferConfirmation is returned once a transfer has committed.
type TransferConfirmation struct {
	State               string          `json:"state"`
	DebitTransactionID  string          `json:"debitTransactionID"`
	CreditTransactionID string          `json:"creditTransactionID"`
	Amount              decimal.Decimal `json:"amount"`
	SourceBalance       decimal.Decimal `json:"sourceBalance"`
	CompletedAt         time.Time       `json:"completedAt"`
}
