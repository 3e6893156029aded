// Package domain contains the core business entities for FleetRent.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserInactive indicates the user account is disabled.
	ErrUserInactive = errors.New("user account is inactive")

	// ErrEmailRequired indicates user creation without an email address.
	ErrEmailRequired = errors.New("user must have an email address")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserOwnsRecords indicates the user still owns vehicles, customers
	// or agreements and cannot be deleted (restrict semantics, no cascade).
	ErrUserOwnsRecords = errors.New("user still owns records")

	// ===========================================
	// Token Errors
	// ===========================================

	// ErrTokenNotFound indicates the presented token does not exist.
	ErrTokenNotFound = errors.New("token not found")

	// ===========================================
	// Vehicle Errors
	// ===========================================

	// ErrVehicleNotFound indicates the requested vehicle does not exist
	// (or is owned by another user - deliberately indistinguishable).
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrVehicleInUse indicates the vehicle is referenced by an agreement
	// and cannot be deleted (protect semantics, no cascade).
	ErrVehicleInUse = errors.New("vehicle is referenced by an agreement")

	// ErrImageRequired indicates an image upload without a payload.
	ErrImageRequired = errors.New("no image was submitted")

	// ===========================================
	// Customer Errors
	// ===========================================

	// ErrCustomerNotFound indicates the requested customer does not exist
	// (or is owned by another user - deliberately indistinguishable).
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrCustomerInUse indicates the customer is referenced by an agreement
	// and cannot be deleted (protect semantics, no cascade).
	ErrCustomerInUse = errors.New("customer is referenced by an agreement")

	// ===========================================
	// Agreement Errors
	// ===========================================

	// ErrAgreementNotFound indicates the requested agreement does not exist
	// (or is owned by another user - deliberately indistinguishable).
	ErrAgreementNotFound = errors.New("agreement not found")

	// ErrInvalidCustomerRef indicates the agreement references a customer
	// that does not exist.
	ErrInvalidCustomerRef = errors.New("referenced customer does not exist")

	// ErrInvalidVehicleRef indicates the agreement references a vehicle
	// that does not exist.
	ErrInvalidVehicleRef = errors.New("referenced vehicle does not exist")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message string) *DomainError {
	return &DomainError{Err: err, Message: message}
}
