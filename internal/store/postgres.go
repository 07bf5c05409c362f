// ABOUTME: Postgres implementation of the Store interface using lib/pq
// ABOUTME: Mirrors the SQLite store for deployments with an external database

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgresStore implements the Store interface using PostgreSQL
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore connects to Postgres with the given DSN and creates
// the schema if it doesn't exist.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	logger := slog.Default().With("component", "store")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("Postgres store initialized")
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// Same uniqueness contract as the SQLite schema: the username constraint
// lives in the database, not in application code.
func (s *PostgresStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			owner_id    TEXT NOT NULL REFERENCES users(id),
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			status      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Ensure PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// CreateUser creates a new user. Returns ErrUsernameExists when the
// username is already taken.
func (s *PostgresStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.PasswordHash,
		user.CreatedAt.UTC(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrUsernameExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Info("created user", "id", user.ID, "username", user.Username)
	return nil
}

// GetUser retrieves a user by ID.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByUsername retrieves a user by username.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*User, error) {
	var user User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &user, nil
}

// CreateTask inserts a new task.
func (s *PostgresStore) CreateTask(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// ListTasks returns all tasks owned by the given user.
func (s *PostgresStore) ListTasks(ctx context.Context, ownerID string) ([]*Task, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at
		FROM tasks
		WHERE owner_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var task Task

		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// DeleteTask deletes a task in a single conditional statement.
func (s *PostgresStore) DeleteTask(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
