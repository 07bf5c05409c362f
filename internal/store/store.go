// ABOUTME: Store interface and data types for taskdeck persistence
// ABOUTME: Defines User, Task structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when trying to create a user with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// User represents an account that can log in and own tasks.
// PasswordHash is a bcrypt hash; the plaintext password is never stored.
type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Task represents a single task owned by exactly one user.
// Status defaults to false (incomplete); no exposed operation sets it to true.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      bool
	CreatedAt   time.Time
}

// Store defines the interface for user and task persistence.
// Both the SQLite and Postgres implementations satisfy it.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	ListTasks(ctx context.Context, ownerID string) ([]*Task, error)
	// DeleteTask removes the task only if both id and owner match, as a
	// single conditional statement. Returns ErrNotFound when no row matched,
	// whether the task is absent or owned by someone else.
	DeleteTask(ctx context.Context, id, ownerID string) error

	// Close releases any resources held by the store
	Close() error
}
