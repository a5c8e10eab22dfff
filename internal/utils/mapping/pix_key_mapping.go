package mapping

import (
	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
	"github.com/pixbank-app/pixbank-backend/internal/models"
)

// ToModelPixKey converts a domain.PixKey to its DB representation.
func ToModelPixKey(d domain.PixKey) models.PixKey {
	return models.PixKey{
		PixKeyID:  d.PixKeyID,
		AccountID: d.AccountID,
		KeyType:   models.PixKeyType(d.KeyType),
		KeyValue:  d.KeyValue,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainPixKey converts a DB PIX key row to its domain representation.
func ToDomainPixKey(m models.PixKey) domain.PixKey {
	return domain.PixKey{
		PixKeyID:  m.PixKeyID,
		AccountID: m.AccountID,
		KeyType:   domain.PixKeyType(m.KeyType),
		KeyValue:  m.KeyValue,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainPixKeySlice converts a slice of DB PIX key rows.
func ToDomainPixKeySlice(ms []models.PixKey) []domain.PixKey {
	ds := make([]domain.PixKey, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPixKey(m)
	}
	return ds
}
