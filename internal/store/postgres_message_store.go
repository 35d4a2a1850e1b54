package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MohamadRiza/happytime/internal/model"
)

// PostgresMessageStore is the PostgreSQL-backed MessageStore.
type PostgresMessageStore struct {
	db *sql.DB
}

func NewPostgresMessageStore(db *sql.DB) *PostgresMessageStore {
	return &PostgresMessageStore{db: db}
}

// ListMessages returns all contact messages, newest first.
func (s *PostgresMessageStore) ListMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, subject, body, read, created_at
		 FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body,
			&m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// GetMessage returns a message by id, or model.ErrNotFound.
func (s *PostgresMessageStore) GetMessage(ctx context.Context, id string) (*model.Message, error) {
	var m model.Message
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, subject, body, read, created_at
		 FROM messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &m, nil
}

// CreateMessage inserts a message.
func (s *PostgresMessageStore) CreateMessage(ctx context.Context, m *model.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, subject, body, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Name, m.Email, m.Subject, m.Body, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// MarkMessageRead flags a message as read.
func (s *PostgresMessageStore) MarkMessageRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return requireRow(res)
}

// DeleteMessage removes a message by id.
func (s *PostgresMessageStore) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return requireRow(res)
}
