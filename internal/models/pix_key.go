package models

import "time"

// PixKeyType mirrors domain.PixKeyType at the storage layer.
type PixKeyType string

// PixKey is the DB representation of a PIX key.
type PixKey struct {
	PixKeyID  string     `db:"pix_key_id"`
	AccountID string     `db:"account_id"`
	KeyType   PixKeyType `db:"key_type"`
	KeyValue  string     `db:"key_value"`
	CreatedAt time.Time  `db:"created_at"`
}
