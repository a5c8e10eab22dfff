package domain

import "time"

// PixKeyType identifies the alias format of a PIX key.
// Values match the wire values the mobile client sends.
type PixKeyType string

const (
	KeyTypeCPF    PixKeyType = "CPF"
	KeyTypePhone  PixKeyType = "TELEFONE"
	KeyTypeEmail  PixKeyType = "EMAIL"
	KeyTypeRandom PixKeyType = "CHAVE_ALEATORIA"
)

// Valid reports whether t is one of the known PIX key types.
func (t PixKeyType) Valid() bool {
	switch t {
	case KeyTypeCPF, KeyTypePhone, KeyTypeEmail, KeyTypeRandom:
		return true
	}
	return false
}

// PixKey is an alias resolving to a bank account for transfers.
// Keys are created and deleted by their owning account, never mutated in place.
// KeyValue is unique across the whole system.
type PixKey struct {
	PixKeyID  string     `json:"pixKeyID"`  // Primary key (UUID)
	AccountID string     `json:"accountID"` // Owning account
	KeyType   PixKeyType `json:"keyType"`
	KeyValue  string     `json:"keyValue"`
	CreatedAt time.Time  `json:"createdAt"`
}
