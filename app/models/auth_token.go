package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// AuthToken is the single opaque bearer credential of an account. Clients
// send it as "Authorization: Token <key>".
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"type:char(40);uniqueIndex;not null" json:"token"`
	AccountID uint      `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

const tokenKeyBytes = 20

// NewAuthToken generates a fresh 40 character hex key for the account.
func NewAuthToken(accountID uint) (*AuthToken, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return &AuthToken{
		Key:       hex.EncodeToString(b),
		AccountID: accountID,
	}, nil
}

// HashTokenKey returns the SHA-256 hash of a token key. Only the hash is used
// as a cache key so raw credentials never leave the database.
func HashTokenKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
