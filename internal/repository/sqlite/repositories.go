package sqlite

import "github.com/fleetrent/fleetrent/internal/repository"

// NewRepositories wires every SQLite repository over a single connection.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Token:     NewTokenRepository(db),
		Vehicle:   NewVehicleRepository(db),
		Customer:  NewCustomerRepository(db),
		Agreement: NewAgreementRepository(db),
	}
}
