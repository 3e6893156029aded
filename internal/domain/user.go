// Package domain contains the core business entities for FleetRent.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the rental back-office.
package domain

import (
	"strings"
	"time"
)

// User represents a registered account in the system.
// Every vehicle, customer and agreement records the user that created it,
// and all API access is scoped to that owner.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Email is the unique email address used for login.
	// Stored normalized: the domain part is lower-cased, the local part
	// keeps its original case.
	Email string `json:"email"`

	// Name is the display name.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This is never exposed in API responses.
	PasswordHash string `json:"-"`

	// IsActive indicates whether the account may authenticate.
	IsActive bool `json:"is_active"`

	// IsStaff marks back-office staff accounts.
	IsStaff bool `json:"is_staff"`

	// IsSuperuser marks accounts with unrestricted privileges.
	// Always implies IsStaff.
	IsSuperuser bool `json:"is_superuser"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with default values.
// The email is stored as given; callers normalize with NormalizeEmail first.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsStaff:      false,
		IsSuperuser:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanAuthenticate returns true if the user is allowed to authenticate.
func (u *User) CanAuthenticate() bool {
	return u.IsActive
}

// NormalizeEmail lower-cases the domain portion of an email address.
// The local part is preserved as-is: "Test2@Example.com" -> "Test2@example.com".
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
