// Package repository defines data access interfaces for FleetRent.
// These interfaces abstract database operations, allowing for different
// implementations (SQLite for embedded deployments, PostgreSQL for servers,
// in-memory mocks for testing) while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/fleetrent/fleetrent/internal/domain"
)

// =============================================================================
// Query Specification
// =============================================================================

// QuerySpec describes a list query explicitly: owner filter, ordering and a
// de-duplication flag. Repositories translate it into SQL; nothing is chained
// implicitly on the way there.
type QuerySpec struct {
	// OwnerID restricts results to records owned by this user. Required;
	// a zero OwnerID matches nothing.
	OwnerID int64

	// OrderBy is the column to sort by. Empty means "id".
	OrderBy string

	// Descending sorts newest-first when true.
	Descending bool

	// Distinct requests de-duplicated rows. For the current schema this is
	// a no-op safeguard; single-table queries cannot produce duplicates.
	Distinct bool
}

// OwnedBy returns the default listing spec for an owner: most recently
// created records first.
func OwnedBy(ownerID int64) QuerySpec {
	return QuerySpec{
		OwnerID:    ownerID,
		OrderBy:    "id",
		Descending: true,
	}
}

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user by ID. Fails with domain.ErrUserOwnsRecords
	// while any vehicle, customer or agreement references the user.
	Delete(ctx context.Context, id int64) error

	// List returns all users, most recently created first.
	List(ctx context.Context) ([]*domain.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// =============================================================================
// Token Repository
// =============================================================================

// TokenRepository defines the interface for API token data access.
type TokenRepository interface {
	// Create stores a newly issued token.
	Create(ctx context.Context, token *domain.Token) error

	// GetByKey retrieves a token by its key.
	GetByKey(ctx context.Context, key string) (*domain.Token, error)

	// GetByUserID retrieves the current token for a user, if any.
	GetByUserID(ctx context.Context, userID int64) (*domain.Token, error)

	// DeleteByKey revokes a token.
	DeleteByKey(ctx context.Context, key string) error

	// DeleteByUserID revokes all tokens of a user.
	DeleteByUserID(ctx context.Context, userID int64) error
}

// =============================================================================
// Vehicle Repository
// =============================================================================

// VehicleRepository defines the interface for vehicle data access.
// Get, Update and Delete are owner-scoped: a record owned by another user
// behaves exactly like a missing record.
type VehicleRepository interface {
	// Create creates a new vehicle.
	Create(ctx context.Context, v *domain.Vehicle) error

	// Get retrieves a vehicle by ID, scoped to the owner.
	Get(ctx context.Context, ownerID, id int64) (*domain.Vehicle, error)

	// GetAny retrieves a vehicle by ID regardless of owner.
	// Used for reference validation, never for API reads.
	GetAny(ctx context.Context, id int64) (*domain.Vehicle, error)

	// List returns vehicles matching the query spec.
	List(ctx context.Context, spec QuerySpec) ([]*domain.Vehicle, error)

	// Update persists all mutable fields of the vehicle, scoped to the owner.
	Update(ctx context.Context, ownerID int64, v *domain.Vehicle) error

	// Delete deletes a vehicle, scoped to the owner. Fails with
	// domain.ErrVehicleInUse while an agreement references it.
	Delete(ctx context.Context, ownerID, id int64) error
}

// =============================================================================
// Customer Repository
// =============================================================================

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	// Create creates a new customer.
	Create(ctx context.Context, c *domain.Customer) error

	// Get retrieves a customer by ID, scoped to the owner.
	Get(ctx context.Context, ownerID, id int64) (*domain.Customer, error)

	// GetAny retrieves a customer by ID regardless of owner.
	GetAny(ctx context.Context, id int64) (*domain.Customer, error)

	// List returns customers matching the query spec.
	List(ctx context.Context, spec QuerySpec) ([]*domain.Customer, error)

	// Update persists all mutable fields of the customer, scoped to the owner.
	Update(ctx context.Context, ownerID int64, c *domain.Customer) error

	// Delete deletes a customer, scoped to the owner. Fails with
	// domain.ErrCustomerInUse while an agreement references it.
	Delete(ctx context.Context, ownerID, id int64) error
}

// =============================================================================
// Agreement Repository
// =============================================================================

// AgreementRepository defines the interface for agreement data access.
type AgreementRepository interface {
	// Create creates a new agreement.
	Create(ctx context.Context, a *domain.Agreement) error

	// Get retrieves an agreement by ID, scoped to the owner.
	Get(ctx context.Context, ownerID, id int64) (*domain.Agreement, error)

	// List returns agreements matching the query spec.
	List(ctx context.Context, spec QuerySpec) ([]*domain.Agreement, error)

	// Update persists all mutable fields of the agreement, scoped to the owner.
	Update(ctx context.Context, ownerID int64, a *domain.Agreement) error

	// Delete deletes an agreement, scoped to the owner. Always permitted;
	// nothing references agreements.
	Delete(ctx context.Context, ownerID, id int64) error

	// CountByVehicle returns the number of agreements referencing a vehicle.
	CountByVehicle(ctx context.Context, vehicleID int64) (int64, error)

	// CountByCustomer returns the number of agreements referencing a customer.
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
}

// =============================================================================
// Aggregate
// =============================================================================

// Repositories holds all repository instances for one backend.
type Repositories struct {
	User      UserRepository
	Token     TokenRepository
	Vehicle   VehicleRepository
	Customer  CustomerRepository
	Agreement AgreementRepository
}

// DatabaseHealth is an interface for database health checks.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Close() error
}
