package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// agreementRepository implements repository.AgreementRepository for PostgreSQL.
type agreementRepository struct {
	db *DB
}

// NewAgreementRepository creates a new PostgreSQL agreement repository.
func NewAgreementRepository(db *DB) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

const agreementColumns = `id, user_id, rent_type, agreement_no, deposit_type,
	external_customer_name, checkin_date, checkout_date,
	customer_id, vehicle_id, created_at, updated_at`

// scanAgreement scans one agreement row from any row scanner.
// DATE columns come back as time.Time and are narrowed to domain.Date.
func scanAgreement(scan func(dest ...any) error) (*domain.Agreement, error) {
	a := &domain.Agreement{}
	var checkin time.Time
	var checkout *time.Time

	err := scan(
		&a.ID,
		&a.UserID,
		&a.RentType,
		&a.AgreementNo,
		&a.DepositType,
		&a.ExternalCustomerName,
		&checkin,
		&checkout,
		&a.CustomerID,
		&a.VehicleID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CheckinDate = domain.Date{Time: checkin}
	if checkout != nil {
		a.CheckoutDate = &domain.Date{Time: *checkout}
	}

	return a, nil
}

// checkoutValue converts an optional checkout date to its storage form.
func checkoutValue(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

// Create creates a new agreement.
func (r *agreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	query := `
		INSERT INTO agreements (user_id, rent_type, agreement_no, deposit_type,
			external_customer_name, checkin_date, checkout_date,
			customer_id, vehicle_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		a.UserID,
		a.RentType,
		a.AgreementNo,
		a.DepositType,
		a.ExternalCustomerName,
		a.CheckinDate.Time,
		checkoutValue(a.CheckoutDate),
		a.CustomerID,
		a.VehicleID,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Creation references a customer or vehicle that is gone.
			return domain.ErrInvalidCustomerRef
		}
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	return nil
}

// Get retrieves an agreement by ID, scoped to the owner.
// An agreement owned by another user is reported as not found.
func (r *agreementRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Agreement, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+agreementColumns+` FROM agreements WHERE id = $1 AND user_id = $2`, id, ownerID)

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
	rows, err := r.db.Pool.Query(ctx, listQuery(agreementColumns, "agreements", spec), spec.OwnerID)
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
	query := `
		UPDATE agreements
		SET rent_type = $1, agreement_no = $2, deposit_type = $3,
			external_customer_name = $4, checkin_date = $5, checkout_date = $6,
			customer_id = $7, vehicle_id = $8, updated_at = now()
		WHERE id = $9 AND user_id = $10
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		a.RentType,
		a.AgreementNo,
		a.DepositType,
		a.ExternalCustomerName,
		a.CheckinDate.Time,
		checkoutValue(a.CheckoutDate),
		a.CustomerID,
		a.VehicleID,
		a.ID,
		ownerID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidCustomerRef
		}
		return fmt.Errorf("failed to update agreement: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAgreementNotFound
	}
	return nil
}

// Delete deletes an agreement, scoped to the owner.
// Always permitted; nothing references agreements.
func (r *agreementRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM agreements WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete agreement: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAgreementNotFound
	}
	return nil
}

// CountByVehicle returns the number of agreements referencing a vehicle.
func (r *agreementRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM agreements WHERE vehicle_id = $1`, vehicleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agreements by vehicle: %w", err)
	}
	return count, nil
}

// CountByCustomer returns the number of agreements referencing a customer.
func (r *agreementRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM agreements WHERE customer_id = $1`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agreements by customer: %w", err)
	}
	return count, nil
}

// Ensure agreementRepository implements repository.AgreementRepository.
var _ repository.AgreementRepository = (*agreementRepository)(nil)
