package postgres

import (
	"context"
	"fmt"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// customerRepository implements repository.CustomerRepository for PostgreSQL.
type customerRepository struct {
	db *DB
}

// NewCustomerRepository creates a new PostgreSQL customer repository.
func NewCustomerRepository(db *DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, user_id, customer_type, customer_name, cr_id_no,
	customer_email, customer_mobile, customer_phone, customer_address,
	is_blocked, created_at, updated_at`

// scanCustomer scans one customer row from any row scanner.
func scanCustomer(scan func(dest ...any) error) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := scan(
		&c.ID,
		&c.UserID,
		&c.CustomerType,
		&c.CustomerName,
		&c.CRIDNo,
		&c.CustomerEmail,
		&c.CustomerMobile,
		&c.CustomerPhone,
		&c.CustomerAddress,
		&c.IsBlocked,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create creates a new customer.
func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (user_id, customer_type, customer_name, cr_id_no,
			customer_email, customer_mobile, customer_phone, customer_address,
			is_blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		c.UserID,
		c.CustomerType,
		c.CustomerName,
		c.CRIDNo,
		c.CustomerEmail,
		c.CustomerMobile,
		c.CustomerPhone,
		c.CustomerAddress,
		c.IsBlocked,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// Get retrieves a customer by ID, scoped to the owner.
func (r *customerRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Customer, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND user_id = $2`, id, ownerID)

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
	row := r.db.Pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)

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
	rows, err := r.db.Pool.Query(ctx, listQuery(customerColumns, "customers", spec), spec.OwnerID)
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
func (r *customerRepository) Update(ctx context.Context, ownerID int64, c *domain.Customer) error {
	query := `
		UPDATE customers
		SET customer_type = $1, customer_name = $2, cr_id_no = $3,
			customer_email = $4, customer_mobile = $5, customer_phone = $6,
			customer_address = $7, is_blocked = $8, updated_at = now()
		WHERE id = $9 AND user_id = $10
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		c.CustomerType,
		c.CustomerName,
		c.CRIDNo,
		c.CustomerEmail,
		c.CustomerMobile,
		c.CustomerPhone,
		c.CustomerAddress,
		c.IsBlocked,
		c.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Delete deletes a customer, scoped to the owner.
func (r *customerRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCustomerInUse
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Ensure customerRepository implements repository.CustomerRepository.
var _ repository.CustomerRepository = (*customerRepository)(nil)
