// Package service provides business logic services for FleetRent.
package service

import "errors"

// Common service errors. Entity-level failures reuse the domain sentinels;
// these cover validation and infrastructure faults.
var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("invalid password: must be at least 5 characters")
	ErrInternalError   = errors.New("internal server error")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 5
