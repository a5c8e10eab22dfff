package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the legal nature of a bank account holder.
// Values match the wire values the mobile client sends.
type AccountType string

const (
	Individual       AccountType = "PF"  // pessoa física
	Company          AccountType = "PJ"  // pessoa jurídica
	MicroEntrepeneur AccountType = "MEI" // microempreendedor individual
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Individual, Company, MicroEntrepeneur:
		return true
	}
	return false
}

// Account represents a bank account within the core domain.
// AccountID is the canonical key; Email is a unique secondary index.
type Account struct {
	AccountID    string          `json:"accountID"` // Primary key (UUID)
	Email        string          `json:"email"`     // Unique, used as an alternate lookup key
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Occupation   string          `json:"occupation"`
	Address      string          `json:"address"`
	AccountType  AccountType     `json:"accountType"`
	PhotoURL     string          `json:"photoURL"`
	Balance      decimal.Decimal `json:"balance"` // Non-negative under normal operation
	PasswordHash string          `json:"-"`       // bcrypt hash, never serialized
	AuditFields

	// Refresh token state, hash only. Nil when no refresh token is outstanding.
	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
