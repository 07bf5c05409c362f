// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides user/task persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// Username uniqueness lives here as a unique index rather than in an
// application-level check, so concurrent signups race on the constraint
// and the loser observes ErrUsernameExists.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			owner_id    TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			status      INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL,

			FOREIGN KEY (owner_id) REFERENCES users(id)
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// CreateUser creates a new user. Returns ErrUsernameExists when the
// username is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, username, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.PasswordHash,
		user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Info("created user", "id", user.ID, "username", user.Username)
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByUsername retrieves a user by username. The lookup is
// case-sensitive; the username is the login key.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, name, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

// scanUser scans a single user row, mapping sql.ErrNoRows to ErrNotFound.
func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var user User
	var createdAtStr string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	user.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &user, nil
}

// CreateTask inserts a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// ListTasks returns all tasks owned by the given user, in store default
// order (no sort guarantee is part of the contract).
func (s *SQLiteStore) ListTasks(ctx context.Context, ownerID string) ([]*Task, error) {
	query := `
		SELECT id, owner_id, title, description, status, created_at
		FROM tasks
		WHERE owner_id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var task Task
		var createdAtStr string

		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&task.Status,
			&createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		task.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// DeleteTask deletes a task in a single conditional statement.
// At most one of two concurrent deletes succeeds; the other sees ErrNotFound.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM tasks WHERE id = ? AND owner_id = ?`

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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	// SQLite returns "UNIQUE constraint failed" in the error message
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "unique constraint"))
}
