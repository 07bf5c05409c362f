// ABOUTME: Tests for SQLite store implementation
// ABOUTME: Covers user creation/uniqueness and task ownership/conditional delete

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore creates a SQLite store in a temp directory.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	return s
}

// testUser inserts a user and returns it.
func testUser(t *testing.T, s *SQLiteStore, username string) *User {
	t.Helper()

	user := &User{
		ID:           "user-" + username,
		Name:         "Test " + username,
		Username:     username,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarea",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	// Verify the database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	user := &User{
		ID:           "user-123",
		Name:         "Ann Example",
		Username:     "ann1",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarea",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUser(ctx, "user-123")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	if got.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, user.ID)
	}
	if got.Name != user.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, user.Name)
	}
	if got.Username != user.Username {
		t.Errorf("Username mismatch: got %q, want %q", got.Username, user.Username)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q, want %q", got.PasswordHash, user.PasswordHash)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, user.CreatedAt)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.GetUser(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByUsername(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	user := testUser(t, store, "ann1")

	got, err := store.GetUserByUsername(context.Background(), "ann1")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, user.ID)
	}

	_, err = store.GetUserByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByUsername_CaseSensitive(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	testUser(t, store, "ann1")

	_, err := store.GetUserByUsername(context.Background(), "ANN1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for different case, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	testUser(t, store, "ann1")

	dup := &User{
		ID:           "user-other",
		Name:         "Someone Else",
		Username:     "ann1",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarea",
		CreatedAt:    time.Now().UTC(),
	}
	err := store.CreateUser(context.Background(), dup)
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	user := testUser(t, store, "ann1")

	for i := 0; i < 3; i++ {
		task := &Task{
			ID:          fmt.Sprintf("task-%d", i),
			OwnerID:     user.ID,
			Title:       fmt.Sprintf("Task %d", i),
			Description: "details",
			Status:      false,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	tasks, err := store.ListTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.OwnerID != user.ID {
			t.Errorf("task %s has wrong owner %q", task.ID, task.OwnerID)
		}
		if task.Status {
			t.Errorf("task %s should default to incomplete", task.ID)
		}
	}
}

func TestListTasks_OwnershipIsolation(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	alice := testUser(t, store, "alice")
	bob := testUser(t, store, "bob")

	task := &Task{
		ID:          "task-alice",
		OwnerID:     alice.ID,
		Title:       "Buy milk",
		Description: "2%",
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	bobTasks, err := store.ListTasks(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(bobTasks) != 0 {
		t.Errorf("expected no tasks for bob, got %d", len(bobTasks))
	}
}

func TestDeleteTask(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	user := testUser(t, store, "ann1")

	task := &Task{
		ID:          "task-1",
		OwnerID:     user.ID,
		Title:       "Buy milk",
		Description: "2%",
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := store.DeleteTask(ctx, "task-1", user.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks, err := store.ListTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected 0 tasks after delete, got %d", len(tasks))
	}

	// Second delete observes the row is gone
	if err := store.DeleteTask(ctx, "task-1", user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteTask_WrongOwner(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	alice := testUser(t, store, "alice")
	bob := testUser(t, store, "bob")

	task := &Task{
		ID:          "task-alice",
		OwnerID:     alice.ID,
		Title:       "Buy milk",
		Description: "2%",
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// Bob cannot delete Alice's task; the delete matches id AND owner
	err := store.DeleteTask(ctx, "task-alice", bob.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong owner, got %v", err)
	}

	// The task is still present for Alice
	tasks, err := store.ListTasks(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected task to survive wrong-owner delete, got %d tasks", len(tasks))
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	err := store.DeleteTask(context.Background(), "nonexistent", "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
