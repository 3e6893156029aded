package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// vehicleRepository implements repository.VehicleRepository for PostgreSQL.
type vehicleRepository struct {
	db *DB
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

// Rates are cast to text so they round-trip through shopspring/decimal
// without binary NUMERIC decoding.
const vehicleColumns = `id, user_id, vehicle_type, vehicle_name, registration_no,
	daily_min_rate::text, daily_max_rate::text, monthly_min_rate::text, monthly_max_rate::text,
	status, image, created_at, updated_at`

// scanVehicle scans one vehicle row from any row scanner.
func scanVehicle(scan func(dest ...any) error) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var dailyMin, dailyMax, monthlyMin, monthlyMax string

	err := scan(
		&v.ID,
		&v.UserID,
		&v.VehicleType,
		&v.VehicleName,
		&v.RegistrationNo,
		&dailyMin,
		&dailyMax,
		&monthlyMin,
		&monthlyMax,
		&v.Status,
		&v.Image,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.DailyMinRate, _ = decimal.NewFromString(dailyMin)
	v.DailyMaxRate, _ = decimal.NewFromString(dailyMax)
	v.MonthlyMinRate, _ = decimal.NewFromString(monthlyMin)
	v.MonthlyMaxRate, _ = decimal.NewFromString(monthlyMax)

	return v, nil
}

// Create creates a new vehicle.
func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (user_id, vehicle_type, vehicle_name, registration_no,
			daily_min_rate, daily_max_rate, monthly_min_rate, monthly_max_rate,
			status, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		v.UserID,
		v.VehicleType,
		v.VehicleName,
		v.RegistrationNo,
		v.DailyMinRate.String(),
		v.DailyMaxRate.String(),
		v.MonthlyMinRate.String(),
		v.MonthlyMaxRate.String(),
		v.Status,
		v.Image,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// Get retrieves a vehicle by ID, scoped to the owner.
func (r *vehicleRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Vehicle, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 AND user_id = $2`, id, ownerID)

	v, err := scanVehicle(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return v, nil
}

// GetAny retrieves a vehicle by ID regardless of owner.
func (r *vehicleRepository) GetAny(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)

	v, err := scanVehicle(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return v, nil
}

// List returns vehicles matching the query spec.
func (r *vehicleRepository) List(ctx context.Context, spec repository.QuerySpec) ([]*domain.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, listQuery(vehicleColumns, "vehicles", spec), spec.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// Update persists all mutable fields of the vehicle, scoped to the owner.
func (r *vehicleRepository) Update(ctx context.Context, ownerID int64, v *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET vehicle_type = $1, vehicle_name = $2, registration_no = $3,
			daily_min_rate = $4, daily_max_rate = $5, monthly_min_rate = $6, monthly_max_rate = $7,
			status = $8, image = $9, updated_at = now()
		WHERE id = $10 AND user_id = $11
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		v.VehicleType,
		v.VehicleName,
		v.RegistrationNo,
		v.DailyMinRate.String(),
		v.DailyMaxRate.String(),
		v.MonthlyMinRate.String(),
		v.MonthlyMaxRate.String(),
		v.Status,
		v.Image,
		v.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// Delete deletes a vehicle, scoped to the owner.
func (r *vehicleRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrVehicleInUse
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// Ensure vehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*vehicleRepository)(nil)
