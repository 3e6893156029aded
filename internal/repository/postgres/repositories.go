package postgres

import "github.com/fleetrent/fleetrent/internal/repository"

// NewRepositories wires every PostgreSQL repository over a single pool.
func NewRepositories(db *DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Token:     NewTokenRepository(db),
		Vehicle:   NewVehicleRepository(db),
		Customer:  NewCustomerRepository(db),
		Agreement: NewAgreementRepository(db),
	}
}
