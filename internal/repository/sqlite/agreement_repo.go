package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// agreementRepository implements repository.AgreementRepository for SQLite.
type agreementRepository struct {
	db *DB
}

// NewAgreementRepository creates a new SQLite agreement repository.
func NewAgreementRepository(db *DB) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

const agreementColumns = `id, user_id, rent_type, agreement_no, deposit_type,
	external_customer_name, checkin_date, checkout_date,
	customer_id, vehicle_id, created_at, updated_at`

// scanAgreement scans one agreement row from any row scanner.
func scanAgreement(scan func(dest ...any) error) (*domain.Agreement, error) {
	a := &domain.Agreement{}
	var externalName, checkoutDate sql.NullString
	var checkinDate string
	var createdAt, updatedAt string

	err := scan(
		&a.ID,
		&a.UserID,
		&a.RentType,
		&a.AgreementNo,
		&a.DepositType,
		&externalName,
		&checkinDate,
		&checkoutDate,
		&a.CustomerID,
		&a.VehicleID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if externalName.Valid {
		a.ExternalCustomerName = &externalName.String
	}
	a.CheckinDate, _ = domain.ParseDate(checkinDate)
	if checkoutDate.Valid {
		d, err := domain.ParseDate(checkoutDate.String)
		if err == nil {
			a.CheckoutDate = &d
		}
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return a, nil
}

// checkoutValue converts an optional checkout date to its storage form.
func checkoutValue(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// Create creates a new agreement.
func (r *agreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	query := `
		INSERT INTO agreements (user_id, rent_type, agreement_no, deposit_type,
			external_customer_name, checkin_date, checkout_date,
			customer_id, vehicle_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.UserID,
		a.RentType,
		a.AgreementNo,
		a.DepositType,
		a.ExternalCustomerName,
		a.CheckinDate.String(),
		checkoutValue(a.CheckoutDate),
		a.CustomerID,
		a.VehicleID,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Creation references a customer or vehicle that is gone.
			return domain.ErrInvalidCustomerRef
		}
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	a.ID = id

	return nil
}

// Get retrieves an agreement by ID, scoped to the owner.
// An agreement owned by another user is reported as not found.
func (r *agreementRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Agreement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+agreementColumns+` FROM agreements WHERE id = ? AND user_id = ?`, id, ownerID)

	a, err := scanAgreement(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAgreementNotFound
		}
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}
	return a, nil
}

// List returns agreements matching the query spec.
func (r *agreementRepository) List(ctx context.Context, spec repository.QuerySpec) ([]*domain.Agreement, error) {
	sel := "SELECT "
	if spec.Distinct {
		sel = "SELECT DISTINCT "
	}
	dir := "ASC"
	if spec.Descending {
		dir = "DESC"
	}
	query := sel + agreementColumns +
		` FROM agreements WHERE user_id = ? ORDER BY ` + orderColumn(spec.OrderBy) + ` ` + dir

	rows, err := r.db.QueryContext(ctx, query, spec.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	defer rows.Close()

	var agreements []*domain.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agreement: %w", err)
		}
		agreements = append(agreements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agreements: %w", err)
	}

	return agreements, nil
}

// Update persists all mutable fields of the agreement, scoped to the owner.
// The owning user is never part of the SET clause.
func (r *agreementRepository) Update(ctx context.Context, ownerID int64, a *domain.Agreement) error {
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE agreements
		SET rent_type = ?, agreement_no = ?, deposit_type = ?,
			external_customer_name = ?, checkin_date = ?, checkout_date = ?,
			customer_id = ?, vehicle_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		a.RentType,
		a.AgreementNo,
		a.DepositType,
		a.ExternalCustomerName,
		a.CheckinDate.String(),
		checkoutValue(a.CheckoutDate),
		a.CustomerID,
		a.VehicleID,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
		ownerID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidCustomerRef
		}
		return fmt.Errorf("failed to update agreement: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrAgreementNotFound
	}

	return nil
}

// Delete deletes an agreement, scoped to the owner.
// Always permitted; nothing references agreements.
func (r *agreementRepository) Delete(ctx context.Context, ownerID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM agreements WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete agreement: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrAgreementNotFound
	}

	return nil
}

// CountByVehicle returns the number of agreements referencing a vehicle.
func (r *agreementRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM agreements WHERE vehicle_id = ?`, vehicleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agreements by vehicle: %w", err)
	}
	return count, nil
}

// CountByCustomer returns the number of agreements referencing a customer.
func (r *agreementRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM agreements WHERE customer_id = ?`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agreements by customer: %w", err)
	}
	return count, nil
}

// Ensure agreementRepository implements repository.AgreementRepository.
var _ repository.AgreementRepository = (*agreementRepository)(nil)
