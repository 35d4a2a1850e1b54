package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/lib/pq"
)

// PostgresVacancyStore is the PostgreSQL-backed VacancyStore.
type PostgresVacancyStore struct {
	db *sql.DB
}

func NewPostgresVacancyStore(db *sql.DB) *PostgresVacancyStore {
	return &PostgresVacancyStore{db: db}
}

// ListVacancies returns all vacancies, newest first. Filtering to active
// postings for the public careers page happens at the handler.
func (s *PostgresVacancyStore) ListVacancies(ctx context.Context) ([]model.Vacancy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, department, location, type, description, requirements,
		        status, created_at, updated_at
		 FROM vacancies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []model.Vacancy
	for rows.Next() {
		var v model.Vacancy
		if err := rows.Scan(&v.ID, &v.Title, &v.Department, &v.Location, &v.Type,
			&v.Description, pq.Array(&v.Requirements), &v.Status,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vacancy: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vacancies: %w", err)
	}
	return vacancies, nil
}

// GetVacancy returns a vacancy by id, or model.ErrNotFound.
func (s *PostgresVacancyStore) GetVacancy(ctx context.Context, id string) (*model.Vacancy, error) {
	var v model.Vacancy
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, department, location, type, description, requirements,
		        status, created_at, updated_at
		 FROM vacancies WHERE id = $1`, id,
	).Scan(&v.ID, &v.Title, &v.Department, &v.Location, &v.Type,
		&v.Description, pq.Array(&v.Requirements), &v.Status,
		&v.CreatedAt, &v.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vacancy: %w", err)
	}
	return &v, nil
}

// CreateVacancy inserts a vacancy.
func (s *PostgresVacancyStore) CreateVacancy(ctx context.Context, v *model.Vacancy) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vacancies (id, title, department, location, type, description,
		                        requirements, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		v.ID, v.Title, v.Department, v.Location, v.Type, v.Description,
		pq.Array(v.Requirements), v.Status, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("create vacancy: %w", err)
	}
	return nil
}

// UpdateVacancy replaces a vacancy's mutable fields.
func (s *PostgresVacancyStore) UpdateVacancy(ctx context.Context, v *model.Vacancy) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE vacancies
		 SET title = $2, department = $3, location = $4, type = $5, description = $6,
		     requirements = $7, status = $8, updated_at = NOW()
		 WHERE id = $1`,
		v.ID, v.Title, v.Department, v.Location, v.Type, v.Description,
		pq.Array(v.Requirements), v.Status)
	if err != nil {
		return fmt.Errorf("update vacancy: %w", err)
	}
	return requireRow(res)
}

// DeleteVacancy removes a vacancy by id.
func (s *PostgresVacancyStore) DeleteVacancy(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vacancy: %w", err)
	}
	return requireRow(res)
}
