package dto

import (
	"time"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

// CreatePixKeyRequest defines the payload for registering a PIX key.
// Key is ignored for type CHAVE_ALEATORIA; the value is generated server-side.
type CreatePixKeyRequest struct {
	Key  string `json:"key"`
	Type string `json:"type" binding:"required,oneof=CPF TELEFONE EMAIL CHAVE_ALEATORIA"`
}

// PixKeyResponse defines the data returned for a PIX key.
type PixKeyResponse struct {
	PixKeyID  string    `json:"id"`
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPixKeyResponse converts a domain.PixKey to PixKeyResponse.
func ToPixKeyResponse(key *domain.PixKey) PixKeyResponse {
	return PixKeyResponse{
		PixKeyID:  key.PixKeyID,
		Type:      string(key.KeyType),
		Key:       key.KeyValue,
		CreatedAt: key.CreatedAt,
	}
}

// ToPixKeyResponses converts a slice of domain PIX keys.
func ToPixKeyResponses(keys []domain.PixKey) []PixKeyResponse {
	res := make([]PixKeyResponse, len(keys))
	for i := range keys {
		res[i] = ToPixKeyResponse(&keys[i])
	}
	return res
}
