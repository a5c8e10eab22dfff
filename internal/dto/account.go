package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

// CreateAccountRequest defines the sign-up payload. JSON field names follow
// the mobile client's wire contract.
type CreateAccountRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"telefone" binding:"required,brphone"`
	Name        string `json:"nome" binding:"required"`
	Occupation  string `json:"ocupacao" binding:"required"`
	Address     string `json:"endereco" binding:"required"`
	AccountType string `json:"tipo" binding:"required,oneof=PF PJ MEI"`
	PhotoURL    string `json:"urlFotoAccount"`
	Password    string `json:"password" binding:"required,min=8"`
}

// UpdateAccountRequest defines the mutable profile fields for PATCH.
// Pointers distinguish omitted fields from zero values. Balance and password
// are deliberately absent: they can never be set through this path.
type UpdateAccountRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"telefone" binding:"omitempty,brphone"`
	Name       *string `json:"nome"`
	Occupation *string `json:"ocupacao"`
	Address    *string `json:"endereco"`
	PhotoURL   *string `json:"urlFotoAccount"`
}

// AccountResponse defines the data returned for an account. The password hash
// and refresh token state are never exposed.
type AccountResponse struct {
	AccountID   string    `json:"id"`
	Email       string    `json:"email"`
	Phone       string    `json:"telefone"`
	Name        string    `json:"nome"`
	Occupation  string    `json:"ocupacao"`
	Address     string    `json:"endereco"`
	AccountType string    `json:"tipo"`
	PhotoURL    string    `json:"urlFotoAccount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	AccountID string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Email:       acc.Email,
		Phone:       acc.Phone,
		Name:        acc.Name,
		Occupation:  acc.Occupation,
		Address:     acc.Address,
		AccountType: string(acc.AccountType),
		PhotoURL:    acc.PhotoURL,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.LastUpdatedAt,
	}
}
