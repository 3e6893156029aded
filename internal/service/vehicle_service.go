package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
	"github.com/fleetrent/fleetrent/internal/storage"
)

// VehicleService handles vehicle management operations.
// Every operation is scoped to the calling user; vehicles owned by other
// users behave as if they do not exist.
type VehicleService struct {
	vehicleRepo   repository.VehicleRepository
	agreementRepo repository.AgreementRepository
	images        storage.ImageStore
	logger        zerolog.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	agreementRepo repository.AgreementRepository,
	images storage.ImageStore,
	logger zerolog.Logger,
) *VehicleService {
	return &VehicleService{
		vehicleRepo:   vehicleRepo,
		agreementRepo: agreementRepo,
		images:        images,
		logger:        logger.With().Str("service", "vehicle").Logger(),
	}
}

// List returns the caller's vehicles, most recently created first.
func (s *VehicleService) List(ctx context.Context, ownerID int64) ([]*domain.Vehicle, error) {
	spec := repository.OwnedBy(ownerID)
	spec.Distinct = true
	return s.vehicleRepo.List(ctx, spec)
}

// Get retrieves one of the caller's vehicles.
func (s *VehicleService) Get(ctx context.Context, ownerID, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.Get(ctx, ownerID, id)
}

// Create stores a new vehicle for the caller.
func (s *VehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		s.logger.Error().Err(err).Int64("user_id", v.UserID).Msg("failed to create vehicle")
		return err
	}

	s.logger.Info().
		Int64("vehicle_id", v.ID).
		Int64("user_id", v.UserID).
		Str("registration_no", v.RegistrationNo).
		Msg("vehicle created")
	return nil
}

// Update persists changes to one of the caller's vehicles.
func (s *VehicleService) Update(ctx context.Context, ownerID int64, v *domain.Vehicle) error {
	if err := s.vehicleRepo.Update(ctx, ownerID, v); err != nil {
		return err
	}

	s.logger.Info().Int64("vehicle_id", v.ID).Msg("vehicle updated")
	return nil
}

// Delete removes one of the caller's vehicles.
// A vehicle referenced by any agreement is protected and cannot be
// deleted until the agreements are removed first.
func (s *VehicleService) Delete(ctx context.Context, ownerID, id int64) error {
	vehicle, err := s.vehicleRepo.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	count, err := s.agreementRepo.CountByVehicle(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("vehicle_id", id).Msg("failed to count agreements")
		return err
	}
	if count > 0 {
		return domain.ErrVehicleInUse
	}

	if err := s.vehicleRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	if vehicle.Image != nil {
		if err := s.images.Delete(ctx, *vehicle.Image); err != nil {
			s.logger.Warn().Err(err).Str("image", *vehicle.Image).Msg("failed to delete vehicle image")
		}
	}

	s.logger.Info().Int64("vehicle_id", id).Msg("vehicle deleted")
	return nil
}

// UploadImage stores an image for one of the caller's vehicles and
// records its path on the row. A previous image is replaced; deleting
// the old file is best-effort.
func (s *VehicleService) UploadImage(ctx context.Context, ownerID, id int64, filename string, reader io.Reader, size int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	relPath := storage.VehicleImagePath(filename)
	if err := s.images.Save(ctx, relPath, reader, size); err != nil {
		s.logger.Error().Err(err).Int64("vehicle_id", id).Msg("failed to store vehicle image")
		return nil, err
	}

	oldImage := vehicle.Image
	vehicle.Image = &relPath

	if err := s.vehicleRepo.Update(ctx, ownerID, vehicle); err != nil {
		// Row update failed; don't leave the new file orphaned.
		if delErr := s.images.Delete(ctx, relPath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("image", relPath).Msg("failed to remove orphaned image")
		}
		return nil, err
	}

	if oldImage != nil && *oldImage != relPath {
		if err := s.images.Delete(ctx, *oldImage); err != nil {
			s.logger.Warn().Err(err).Str("image", *oldImage).Msg("failed to delete replaced image")
		}
	}

	s.logger.Info().
		Int64("vehicle_id", id).
		Str("image", relPath).
		Msg("vehicle image uploaded")
	return vehicle, nil
}
