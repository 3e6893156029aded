// Package domain contains the core business entities for FleetRent.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle represents a rentable vehicle in the fleet.
// Rates are stored with fixed precision (10 digits, 3 decimal places).
type Vehicle struct {
	// ID is the unique identifier for the vehicle (auto-generated).
	ID int64 `json:"id"`

	// UserID is the ID of the owning user. Required; the owning user
	// cannot be deleted while vehicles reference it.
	UserID int64 `json:"user_id"`

	// VehicleType is a short free-form classification (e.g. "sedan").
	VehicleType string `json:"vehicle_type"`

	// VehicleName is the display name of the vehicle.
	VehicleName string `json:"vehicle_name"`

	// RegistrationNo is the licence plate / registration number.
	RegistrationNo string `json:"registration_no"`

	// DailyMinRate is the minimum daily rental rate.
	DailyMinRate decimal.Decimal `json:"daily_min_rate"`

	// DailyMaxRate is the maximum daily rental rate.
	DailyMaxRate decimal.Decimal `json:"daily_max_rate"`

	// MonthlyMinRate is the minimum monthly rental rate.
	MonthlyMinRate decimal.Decimal `json:"monthly_min_rate"`

	// MonthlyMaxRate is the maximum monthly rental rate.
	MonthlyMaxRate decimal.Decimal `json:"monthly_max_rate"`

	// Status is a short free-form status (e.g. "available", "in-service").
	Status string `json:"status"`

	// Image is the storage path of the vehicle photo, if one was uploaded.
	// The path is generated on upload and never derived from the original
	// filename.
	Image *string `json:"image"`

	// CreatedAt is the timestamp when the vehicle was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the vehicle was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVehicle creates a new Vehicle owned by the given user.
func NewVehicle(userID int64) *Vehicle {
	now := time.Now().UTC()
	return &Vehicle{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
