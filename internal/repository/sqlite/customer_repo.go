package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// customerRepository implements repository.CustomerRepository for SQLite.
type customerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new SQLite customer repository.
func NewCustomerRepository(db *DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, user_id, customer_type, customer_name, cr_id_no,
	customer_email, customer_mobile, customer_phone, customer_address,
	is_blocked, created_at, updated_at`

// scanCustomer scans one customer row from any row scanner.
func scanCustomer(scan func(dest ...any) error) (*domain.Customer, error) {
	c := &domain.Customer{}
	var phone, address sql.NullString
	var isBlocked int
	var createdAt, updatedAt string

	err := scan(
		&c.ID,
		&c.UserID,
		&c.CustomerType,
		&c.CustomerName,
		&c.CRIDNo,
		&c.CustomerEmail,
		&c.CustomerMobile,
		&phone,
		&address,
		&isBlocked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		c.CustomerPhone = &phone.String
	}
	if address.Valid {
		c.CustomerAddress = &address.String
	}
	c.IsBlocked = isBlocked != 0
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return c, nil
}

// Create creates a new customer.
func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (user_id, customer_type, customer_name, cr_id_no,
			customer_email, customer_mobile, customer_phone, customer_address,
			is_blocked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.UserID,
		c.CustomerType,
		c.CustomerName,
		c.CRIDNo,
		c.CustomerEmail,
		c.CustomerMobile,
		c.CustomerPhone,
		c.CustomerAddress,
		boolToInt(c.IsBlocked),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	c.ID = id

	return nil
}

// Get retrieves a customer by ID, scoped to the owner.
// A customer owned by another user is reported as not found.
func (r *customerRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ? AND user_id = ?`, id, ownerID)

	c, err := scanCustomer(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// GetAny retrieves a customer by ID regardless of owner.
func (r *customerRepository) GetAny(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)

	c, err := scanCustomer(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// List returns customers matching the query spec.
func (r *customerRepository) List(ctx context.Context, spec repository.QuerySpec) ([]*domain.Customer, error) {
	sel := "SELECT "
	if spec.Distinct {
		sel = "SELECT DISTINCT "
	}
	dir := "ASC"
	if spec.Descending {
		dir = "DESC"
	}
	query := sel + customerColumns +
		` FROM customers WHERE user_id = ? ORDER BY ` + orderColumn(spec.OrderBy) + ` ` + dir

	rows, err := r.db.QueryContext(ctx, query, spec.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Update persists all mutable fields of the customer, scoped to the owner.
// The owning user is never part of the SET clause.
func (r *customerRepository) Update(ctx context.Context, ownerID int64, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE customers
		SET customer_type = ?, customer_name = ?, cr_id_no = ?,
			customer_email = ?, customer_mobile = ?, customer_phone = ?,
			customer_address = ?, is_blocked = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.CustomerType,
		c.CustomerName,
		c.CRIDNo,
		c.CustomerEmail,
		c.CustomerMobile,
		c.CustomerPhone,
		c.CustomerAddress,
		boolToInt(c.IsBlocked),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// Delete deletes a customer, scoped to the owner.
// Agreements reference customers with ON DELETE RESTRICT; the violation is
// surfaced as ErrCustomerInUse.
func (r *customerRepository) Delete(ctx context.Context, ownerID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCustomerInUse
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// Ensure customerRepository implements repository.CustomerRepository.
var _ repository.CustomerRepository = (*customerRepository)(nil)
