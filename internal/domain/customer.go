// Package domain contains the core business entities for FleetRent.
package domain

import "time"

// Customer represents a rental customer.
type Customer struct {
	// ID is the unique identifier for the customer (auto-generated).
	ID int64 `json:"id"`

	// UserID is the ID of the owning user. Required; the owning user
	// cannot be deleted while customers reference it.
	UserID int64 `json:"user_id"`

	// CustomerType is a short free-form classification (e.g. "individual").
	CustomerType string `json:"customer_type"`

	// CustomerName is the customer's display name.
	CustomerName string `json:"customer_name"`

	// CRIDNo is the commercial registration or national ID number.
	CRIDNo string `json:"cr_id_no"`

	// CustomerEmail is the customer's contact email.
	CustomerEmail string `json:"customer_email"`

	// CustomerMobile is the customer's mobile number.
	CustomerMobile string `json:"customer_mobile"`

	// CustomerPhone is an optional landline number.
	CustomerPhone *string `json:"customer_phone"`

	// CustomerAddress is an optional free-text address.
	CustomerAddress *string `json:"customer_address"`

	// IsBlocked marks customers barred from new agreements.
	IsBlocked bool `json:"is_blocked"`

	// CreatedAt is the timestamp when the customer was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the customer was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer creates a new Customer owned by the given user.
func NewCustomer(userID int64) *Customer {
	now := time.Now().UTC()
	return &Customer{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
