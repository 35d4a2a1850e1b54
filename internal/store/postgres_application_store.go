package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MohamadRiza/happytime/internal/model"
)

// PostgresApplicationStore is the PostgreSQL-backed ApplicationStore.
type PostgresApplicationStore struct {
	db *sql.DB
}

func NewPostgresApplicationStore(db *sql.DB) *PostgresApplicationStore {
	return &PostgresApplicationStore{db: db}
}

const applicationColumns = `id, application_code, vacancy_id, name, email, phone,
        cover_letter, resume_path, resume_drive_link, status, created_at, updated_at`

// ListApplications returns all applications, newest first.
func (s *PostgresApplicationStore) ListApplications(ctx context.Context) ([]model.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var applications []model.Application
	for rows.Next() {
		var a model.Application
		if err := scanApplication(rows, &a); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applications, nil
}

// GetApplication returns an application by id, or model.ErrNotFound.
func (s *PostgresApplicationStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	var a model.Application
	err := scanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id), &a)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &a, nil
}

// GetApplicationByCode looks up an application by its code and the email it
// was submitted with. The code is matched case-insensitively.
func (s *PostgresApplicationStore) GetApplicationByCode(ctx context.Context, code, email string) (*model.Application, error) {
	var a model.Application
	err := scanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE application_code = $1 AND LOWER(email) = LOWER($2)`,
		strings.ToUpper(strings.TrimSpace(code)), email), &a)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get application by code: %w", err)
	}
	return &a, nil
}

// CreateApplication inserts an application.
func (s *PostgresApplicationStore) CreateApplication(ctx context.Context, a *model.Application) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (id, application_code, vacancy_id, name, email, phone,
		                           cover_letter, resume_path, resume_drive_link, status,
		                           created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		a.ID, a.ApplicationCode, a.VacancyID, a.Name, a.Email, a.Phone,
		a.CoverLetter, a.ResumePath, a.ResumeDriveLink, a.Status, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// UpdateApplicationStatus moves an application to a new status.
func (s *PostgresApplicationStore) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return requireRow(res)
}

func scanApplication(row rowScanner, a *model.Application) error {
	return row.Scan(&a.ID, &a.ApplicationCode, &a.VacancyID, &a.Name, &a.Email,
		&a.Phone, &a.CoverLetter, &a.ResumePath, &a.ResumeDriveLink,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
}
