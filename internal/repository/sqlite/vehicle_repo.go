package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// vehicleRepository implements repository.VehicleRepository for SQLite.
type vehicleRepository struct {
	db *DB
}

// NewVehicleRepository creates a new SQLite vehicle repository.
func NewVehicleRepository(db *DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, user_id, vehicle_type, vehicle_name, registration_no,
	daily_min_rate, daily_max_rate, monthly_min_rate, monthly_max_rate,
	status, image, created_at, updated_at`

// scanVehicle scans one vehicle row from any row scanner.
func scanVehicle(scan func(dest ...any) error) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var dailyMin, dailyMax, monthlyMin, monthlyMax string
	var image sql.NullString
	var createdAt, updatedAt string

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
		&image,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.DailyMinRate, _ = decimal.NewFromString(dailyMin)
	v.DailyMaxRate, _ = decimal.NewFromString(dailyMax)
	v.MonthlyMinRate, _ = decimal.NewFromString(monthlyMin)
	v.MonthlyMaxRate, _ = decimal.NewFromString(monthlyMax)
	if image.Valid {
		v.Image = &image.String
	}
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return v, nil
}

// Create creates a new vehicle.
func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (user_id, vehicle_type, vehicle_name, registration_no,
			daily_min_rate, daily_max_rate, monthly_min_rate, monthly_max_rate,
			status, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
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
		v.CreatedAt.Format(time.RFC3339),
		v.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	v.ID = id

	return nil
}

// Get retrieves a vehicle by ID, scoped to the owner.
// A vehicle owned by another user is reported as not found.
func (r *vehicleRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ? AND user_id = ?`, id, ownerID)

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
	row := r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)

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
	sel := "SELECT "
	if spec.Distinct {
		sel = "SELECT DISTINCT "
	}
	dir := "ASC"
	if spec.Descending {
		dir = "DESC"
	}
	query := sel + vehicleColumns +
		` FROM vehicles WHERE user_id = ? ORDER BY ` + orderColumn(spec.OrderBy) + ` ` + dir

	rows, err := r.db.QueryContext(ctx, query, spec.OwnerID)
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
// The owning user is never part of the SET clause.
func (r *vehicleRepository) Update(ctx context.Context, ownerID int64, v *domain.Vehicle) error {
	v.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE vehicles
		SET vehicle_type = ?, vehicle_name = ?, registration_no = ?,
			daily_min_rate = ?, daily_max_rate = ?, monthly_min_rate = ?, monthly_max_rate = ?,
			status = ?, image = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		v.VehicleType,
		v.VehicleName,
		v.RegistrationNo,
		v.DailyMinRate.String(),
		v.DailyMaxRate.String(),
		v.MonthlyMinRate.String(),
		v.MonthlyMaxRate.String(),
		v.Status,
		v.Image,
		v.UpdatedAt.Format(time.RFC3339),
		v.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

// Delete deletes a vehicle, scoped to the owner.
// Agreements reference vehicles with ON DELETE RESTRICT; the violation is
// surfaced as ErrVehicleInUse.
func (r *vehicleRepository) Delete(ctx context.Context, ownerID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrVehicleInUse
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

// Ensure vehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*vehicleRepository)(nil)
