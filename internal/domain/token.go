// Package domain contains the core business entities for FleetRent.
package domain

import "time"

// Token is an opaque API token bound to a user.
// Clients present the key as a bearer credential on every request.
type Token struct {
	// Key is the 40-character hex token presented by clients.
	Key string `json:"key"`

	// UserID is the ID of the user the token authenticates.
	UserID int64 `json:"user_id"`

	// CreatedAt is the timestamp when the token was issued.
	CreatedAt time.Time `json:"created_at"`
}

// NewToken creates a token binding the given key to a user.
func NewToken(key string, userID int64) *Token {
	return &Token{
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}
