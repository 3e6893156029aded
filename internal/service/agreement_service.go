package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// AgreementService handles rental agreement operations.
// Every operation is scoped to the calling user. The referenced customer
// and vehicle must exist but are not required to belong to the caller.
type AgreementService struct {
	agreementRepo repository.AgreementRepository
	customerRepo  repository.CustomerRepository
	vehicleRepo   repository.VehicleRepository
	logger        zerolog.Logger
}

// NewAgreementService creates a new AgreementService.
func NewAgreementService(
	agreementRepo repository.AgreementRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	logger zerolog.Logger,
) *AgreementService {
	return &AgreementService{
		agreementRepo: agreementRepo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
		logger:        logger.With().Str("service", "agreement").Logger(),
	}
}

// List returns the caller's agreements, most recently created first.
func (s *AgreementService) List(ctx context.Context, ownerID int64) ([]*domain.Agreement, error) {
	return s.agreementRepo.List(ctx, repository.OwnedBy(ownerID))
}

// Get retrieves one of the caller's agreements.
func (s *AgreementService) Get(ctx context.Context, ownerID, id int64) (*domain.Agreement, error) {
	return s.agreementRepo.Get(ctx, ownerID, id)
}

// Create stores a new agreement for the caller after checking that the
// referenced customer and vehicle exist.
func (s *AgreementService) Create(ctx context.Context, a *domain.Agreement) error {
	if err := s.validateRefs(ctx, a); err != nil {
		return err
	}

	if err := s.agreementRepo.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Int64("user_id", a.UserID).Msg("failed to create agreement")
		return err
	}

	s.logger.Info().
		Int64("agreement_id", a.ID).
		Int64("user_id", a.UserID).
		Str("agreement_no", a.AgreementNo).
		Msg("agreement created")
	return nil
}

// Update persists changes to one of the caller's agreements.
func (s *AgreementService) Update(ctx context.Context, ownerID int64, a *domain.Agreement) error {
	if err := s.validateRefs(ctx, a); err != nil {
		return err
	}

	if err := s.agreementRepo.Update(ctx, ownerID, a); err != nil {
		return err
	}

	s.logger.Info().Int64("agreement_id", a.ID).Msg("agreement updated")
	return nil
}

// Delete removes one of the caller's agreements.
// Always permitted; nothing references agreements.
func (s *AgreementService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.agreementRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info().Int64("agreement_id", id).Msg("agreement deleted")
	return nil
}

// validateRefs checks that the referenced customer and vehicle exist.
func (s *AgreementService) validateRefs(ctx context.Context, a *domain.Agreement) error {
	if _, err := s.customerRepo.GetAny(ctx, a.CustomerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.ErrInvalidCustomerRef
		}
		return err
	}
	if _, err := s.vehicleRepo.GetAny(ctx, a.VehicleID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return domain.ErrInvalidVehicleRef
		}
		return err
	}
	return nil
}
