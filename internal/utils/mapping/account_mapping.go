package mapping

import (
	"database/sql"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	"github.com/pixbank-app/pixbank-backend/internal/models"
)

// ToModelAccount converts a domain.Account to its DB representation.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:    d.AccountID,
		Email:        d.Email,
		Name:         d.Name,
		Phone:        d.Phone,
		Occupation:   d.Occupation,
		Address:      d.Address,
		AccountType:  models.AccountType(d.AccountType),
		PhotoURL:     d.PhotoURL,
		Balance:      d.Balance,
		PasswordHash: d.PasswordHash,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainAccount converts a DB account row to its domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:    m.AccountID,
		Email:        m.Email,
		Name:         m.Name,
		Phone:        m.Phone,
		Occupation:   m.Occupation,
		Address:      m.Address,
		AccountType:  domain.AccountType(m.AccountType),
		PhotoURL:     m.PhotoURL,
		Balance:      m.Balance,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = &m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		d.RefreshTokenExpiryTime = &m.RefreshTokenExpiryTime.Time
	}
	return d
}
