// ABOUTME: Request handlers for signup, login, and per-user task operations
// ABOUTME: Each handler maps its failures locally onto the fixed response taxonomy

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/store"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// SignupRequest is the JSON request body for POST /signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the JSON request body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the JSON response for a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AddTaskRequest is the JSON request body for POST /add.
type AddTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskResponse is the JSON shape of a single task.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      bool   `json:"status"`
}

// ListTasksResponse is the JSON response for GET /todos.
type ListTasksResponse struct {
	Todos []TaskResponse `json:"todos"`
}

// handleSignup handles POST /signup. Uniqueness is enforced by the
// store's username constraint, so two racing signups cannot both succeed.
func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if req.Name == "" || req.Username == "" || req.Password == "" {
		a.writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		a.logger.Error("hashing password", "error", err)
		a.writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &store.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			a.writeMessage(w, http.StatusBadRequest, "Username already exists")
			return
		}
		a.logger.Error("creating user", "error", err)
		a.writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.writeMessage(w, http.StatusCreated, "User created successfully")
}

// handleLogin handles POST /login. An unknown username and a wrong
// password produce byte-identical responses, and the unknown-username
// path still performs a bcrypt comparison so response timing doesn't
// leak which field was wrong.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if req.Username == "" || req.Password == "" {
		a.writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	// Dummy hash for constant-time comparison when the user doesn't exist
	const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	user, err := a.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
			a.writeMessage(w, http.StatusBadRequest, "Invalid username or password")
			return
		}
		a.logger.Error("looking up user", "error", err)
		a.writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		a.writeMessage(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	token, err := a.codec.Issue(user.ID, user.Username, a.tokenTTL)
	if err != nil {
		a.logger.Error("issuing token", "error", err)
		a.writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.logger.Info("login successful", "username", user.Username)
	a.writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// handleListTasks handles GET /todos. Returns every task owned by the
// caller; no pagination, no filtering.
func (a *API) handleListTasks(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	tasks, hit := a.cache.Get(r.Context(), id.UserID)
	if !hit {
		var err error
		tasks, err = a.store.ListTasks(r.Context(), id.UserID)
		if err != nil {
			a.logger.Error("listing tasks", "error", err)
			a.writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		a.cache.Set(r.Context(), id.UserID, tasks)
	}

	todos := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		todos = append(todos, TaskResponse{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
		})
	}

	a.writeJSON(w, http.StatusOK, ListTasksResponse{Todos: todos})
}

// handleAddTask handles POST /add. Responds 200 rather than 201, and the
// created task's ID is not returned; both quirks are part of the
// observed contract. The validation message wording differs from
// signup's on purpose for the same reason.
func (a *API) handleAddTask(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeMessage(w, http.StatusBadRequest, "all thing are required")
		return
	}

	if req.Title == "" || req.Description == "" {
		a.writeMessage(w, http.StatusBadRequest, "all thing are required")
		return
	}

	task := &store.Task{
		ID:          uuid.New().String(),
		OwnerID:     id.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := a.store.CreateTask(r.Context(), task); err != nil {
		a.logger.Error("creating task", "error", err)
		a.writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}

	a.cache.Invalidate(r.Context(), id.UserID)
	a.writeMessage(w, http.StatusOK, "todo is added ")
}

// handleDeleteTask handles DELETE /delete/{id}. The store delete matches
// id and owner in one statement; a task that exists but belongs to
// someone else is indistinguishable from one that doesn't exist.
func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())
	taskID := r.PathValue("id")

	if err := a.store.DeleteTask(r.Context(), taskID, id.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.writeMessage(w, http.StatusNotFound, "Todo not found ")
			return
		}
		a.logger.Error("deleting task", "error", err)
		a.writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}

	a.cache.Invalidate(r.Context(), id.UserID)
	a.writeMessage(w, http.StatusOK, "todo deleted")
}

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
