// ABOUTME: HTTP API surface for taskdeck: signup, login, and task operations
// ABOUTME: Wires handlers onto a ServeMux with the auth gate on protected routes

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/cache"
	"github.com/2389/taskdeck/internal/store"
)

// API holds the dependencies for the HTTP handlers. Everything is passed
// in at construction; there is no package-level state.
type API struct {
	store    store.Store
	cache    *cache.TaskCache
	codec    auth.TokenCodec
	tokenTTL time.Duration
	logger   *slog.Logger
}

// New creates an API. The cache may be nil, in which case every list
// request hits the store directly.
func New(s store.Store, c *cache.TaskCache, codec auth.TokenCodec, tokenTTL time.Duration) *API {
	return &API{
		store:    s,
		cache:    c,
		codec:    codec,
		tokenTTL: tokenTTL,
		logger:   slog.Default().With("component", "api"),
	}
}

// RegisterRoutes registers all API routes on the given mux. Task routes
// sit behind the auth gate; signup and login do not.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	// Public routes (no auth required)
	mux.HandleFunc("POST /signup", a.handleSignup)
	mux.HandleFunc("POST /login", a.handleLogin)
	mux.HandleFunc("GET /health", a.handleHealth)

	// Protected routes (auth required)
	gate := auth.Middleware(a.codec)
	mux.Handle("GET /todos", gate(http.HandlerFunc(a.handleListTasks)))
	mux.Handle("POST /add", gate(http.HandlerFunc(a.handleAddTask)))
	mux.Handle("DELETE /delete/{id}", gate(http.HandlerFunc(a.handleDeleteTask)))

	a.logger.Info("api routes registered")
}

// writeJSON writes a JSON response body with the given status.
func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encoding response", "error", err)
	}
}

// writeMessage writes the standard {"message": ...} response body.
func (a *API) writeMessage(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"message": message})
}
