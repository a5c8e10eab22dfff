package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the DB representation of a bank account.
type Account struct {
	AccountID    string          `db:"account_id"`
	Email        string          `db:"email"`
	Name         string          `db:"name"`
	Phone        string          `db:"phone"`
	Occupation   string          `db:"occupation"`
	Address      string          `db:"address"`
	AccountType  AccountType     `db:"account_type"`
	PhotoURL     string          `db:"photo_url"`
	Balance      decimal.Decimal `db:"balance"`
	PasswordHash string          `db:"password_hash"`
	AuditFields

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
