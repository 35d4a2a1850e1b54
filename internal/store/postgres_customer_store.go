package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/lib/pq"
)

// PostgresCustomerStore is the PostgreSQL-backed CustomerStore.
type PostgresCustomerStore struct {
	db *sql.DB
}

func NewPostgresCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

const customerColumns = `id, name, email, phone, password_hash,
        company_name, business_type, tax_id, address, created_at, updated_at`

// GetCustomer returns a customer by id, or model.ErrNotFound.
func (s *PostgresCustomerStore) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	return s.getCustomer(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetCustomerByEmail returns a customer by email, or model.ErrNotFound.
func (s *PostgresCustomerStore) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return s.getCustomer(ctx, `SELECT `+customerColumns+` FROM customers WHERE LOWER(email) = LOWER($1)`, email)
}

func (s *PostgresCustomerStore) getCustomer(ctx context.Context, query, arg string) (*model.Customer, error) {
	var c model.Customer
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PasswordHash,
		&c.BusinessDetails.CompanyName, &c.BusinessDetails.BusinessType,
		&c.BusinessDetails.TaxID, &c.BusinessDetails.Address,
		&c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// CreateCustomer inserts a customer. A duplicate email surfaces as
// model.ErrDuplicateEmail.
func (s *PostgresCustomerStore) CreateCustomer(ctx context.Context, c *model.Customer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, phone, password_hash,
		                        company_name, business_type, tax_id, address,
		                        created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		c.ID, c.Name, c.Email, c.Phone, c.PasswordHash,
		c.BusinessDetails.CompanyName, c.BusinessDetails.BusinessType,
		c.BusinessDetails.TaxID, c.BusinessDetails.Address, c.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return model.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// UpdateCustomer replaces a customer's profile fields. Email and password
// are intentionally not updatable through this path.
func (s *PostgresCustomerStore) UpdateCustomer(ctx context.Context, c *model.Customer) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE customers
		 SET name = $2, phone = $3, company_name = $4, business_type = $5,
		     tax_id = $6, address = $7, updated_at = NOW()
		 WHERE id = $1`,
		c.ID, c.Name, c.Phone,
		c.BusinessDetails.CompanyName, c.BusinessDetails.BusinessType,
		c.BusinessDetails.TaxID, c.BusinessDetails.Address)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return requireRow(res)
}
