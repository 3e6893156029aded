// Package domain contains the core business entities for FleetRent.
package domain

import "time"

// Agreement represents a rental agreement binding a customer to a vehicle.
// The referenced customer and vehicle are protected: they cannot be deleted
// while an agreement references them.
type Agreement struct {
	// ID is the unique identifier for the agreement (auto-generated).
	ID int64 `json:"id"`

	// UserID is the ID of the owning user. Required; the owning user
	// cannot be deleted while agreements reference it.
	UserID int64 `json:"user_id"`

	// RentType is a short free-form rental classification (e.g. "daily").
	RentType string `json:"rent_type"`

	// AgreementNo is the business reference number of the agreement.
	AgreementNo string `json:"agreement_no"`

	// DepositType is a short free-form deposit classification.
	DepositType string `json:"deposit_type"`

	// ExternalCustomerName optionally names a driver or customer outside
	// the customer register.
	ExternalCustomerName *string `json:"external_customer_name"`

	// CheckinDate is the date the rental starts. Required.
	CheckinDate Date `json:"checkin_date"`

	// CheckoutDate is the date the rental concluded. Set by the caller
	// when the vehicle is returned; there is no automatic transition.
	CheckoutDate *Date `json:"checkout_date"`

	// CustomerID references exactly one Customer.
	CustomerID int64 `json:"customer"`

	// VehicleID references exactly one Vehicle.
	VehicleID int64 `json:"vehicle"`

	// CreatedAt is the timestamp when the agreement was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the agreement was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAgreement creates a new Agreement owned by the given user.
func NewAgreement(userID int64) *Agreement {
	now := time.Now().UTC()
	return &Agreement{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
