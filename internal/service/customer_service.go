package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// CustomerService handles customer management operations.
// Every operation is scoped to the calling user.
type CustomerService struct {
	customerRepo  repository.CustomerRepository
	agreementRepo repository.AgreementRepository
	logger        zerolog.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	agreementRepo repository.AgreementRepository,
	logger zerolog.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo:  customerRepo,
		agreementRepo: agreementRepo,
		logger:        logger.With().Str("service", "customer").Logger(),
	}
}

// List returns the caller's customers, most recently created first.
func (s *CustomerService) List(ctx context.Context, ownerID int64) ([]*domain.Customer, error) {
	return s.customerRepo.List(ctx, repository.OwnedBy(ownerID))
}

// Get retrieves one of the caller's customers.
func (s *CustomerService) Get(ctx context.Context, ownerID, id int64) (*domain.Customer, error) {
	return s.customerRepo.Get(ctx, ownerID, id)
}

// Create stores a new customer for the caller.
func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) error {
	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Int64("user_id", c.UserID).Msg("failed to create customer")
		return err
	}

	s.logger.Info().
		Int64("customer_id", c.ID).
		Int64("user_id", c.UserID).
		Msg("customer created")
	return nil
}

// Update persists changes to one of the caller's customers.
func (s *CustomerService) Update(ctx context.Context, ownerID int64, c *domain.Customer) error {
	if err := s.customerRepo.Update(ctx, ownerID, c); err != nil {
		return err
	}

	s.logger.Info().Int64("customer_id", c.ID).Msg("customer updated")
	return nil
}

// Delete removes one of the caller's customers.
// A customer referenced by any agreement is protected and cannot be
// deleted until the agreements are removed first.
func (s *CustomerService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.customerRepo.Get(ctx, ownerID, id); err != nil {
		return err
	}

	count, err := s.agreementRepo.CountByCustomer(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to count agreements")
		return err
	}
	if count > 0 {
		return domain.ErrCustomerInUse
	}

	if err := s.customerRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}
