package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MohamadRiza/happytime/internal/catalog"
	"github.com/MohamadRiza/happytime/internal/model"
)

// PostgresProductStore is the PostgreSQL-backed ProductStore.
type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

const productColumns = `id, title, brand, description, model_number, product_type,
        gender, watch_shape, colors, price, image_url, featured, created_at`

// ListProducts returns the full product list, newest first.
func (s *PostgresProductStore) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct returns a product by id, or model.ErrNotFound.
func (s *PostgresProductStore) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProduct inserts a product.
func (s *PostgresProductStore) CreateProduct(ctx context.Context, p *catalog.Product) error {
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("encode colors: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO products (id, title, brand, description, model_number, product_type,
		                       gender, watch_shape, colors, price, image_url, featured, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		p.ID, p.Title, p.Brand, p.Description, p.ModelNumber, p.ProductType,
		p.Gender, p.WatchShape, colors, nullFloat(p.Price), p.ImageURL, p.Featured, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces a product's mutable fields.
func (s *PostgresProductStore) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("encode colors: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET title = $2, brand = $3, description = $4, model_number = $5, product_type = $6,
		     gender = $7, watch_shape = $8, colors = $9, price = $10, image_url = $11,
		     featured = $12, updated_at = NOW()
		 WHERE id = $1`,
		p.ID, p.Title, p.Brand, p.Description, p.ModelNumber, p.ProductType,
		p.Gender, p.WatchShape, colors, nullFloat(p.Price), p.ImageURL, p.Featured)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res)
}

// DeleteProduct removes a product by id.
func (s *PostgresProductStore) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var p catalog.Product
	var colors []byte
	var price sql.NullFloat64

	err := row.Scan(&p.ID, &p.Title, &p.Brand, &p.Description, &p.ModelNumber,
		&p.ProductType, &p.Gender, &p.WatchShape, &colors, &price,
		&p.ImageURL, &p.Featured, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("decode colors: %w", err)
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	return &p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
