package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("task not found")

// Filter narrows List results. Empty label fields mean no filter;
// Limit is applied as given, the caller sets defaults.
type Filter struct {
	Status   string
	Priority string
	Skip     int
	Limit    int
}

// Store is the persistence contract the service composes with.
type Store interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id int) (Task, error)
	List(ctx context.Context, f Filter) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int) error
}

// PostgresStore keeps tasks in a single Postgres table.
type PostgresStore struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Create(ctx context.Context, t *Task) error {
	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, priority, priority_reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.Priority, t.PriorityReason, t.Status)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *PostgresStore) GetByID(ctx context.Context, id int) (Task, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, title, description, priority, priority_reason, status, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, id)

	var t Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.PriorityReason,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Task, error) {
	query := `
		SELECT id, title, description, priority, priority_reason, status, created_at, updated_at
		FROM tasks`

	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	args = append(args, f.Limit, f.Skip)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Priority,
			&t.PriorityReason,
			&t.Status,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, t *Task) error {
	row := s.DB.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, priority_reason = $4, status = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, t.Title, t.Description, t.Priority, t.PriorityReason, t.Status, t.ID)

	err := row.Scan(&t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
