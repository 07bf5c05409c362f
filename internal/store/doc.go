// Package store provides persistent storage for taskdeck.
//
// # Architecture
//
// The Store interface covers user and task persistence. Two
// implementations exist:
//
//   - SQLiteStore: embedded database via modernc.org/sqlite (default)
//   - PostgresStore: external database via lib/pq
//
// Handlers depend only on the interface; the engine is selected at
// startup from configuration.
//
// # Data Models
//
//   - User: account record with a bcrypt password hash. Usernames are
//     unique, enforced by a database constraint so that concurrent
//     signups cannot both succeed.
//   - Task: owned by exactly one user. Deletion is a single conditional
//     DELETE matching both id and owner, so ownership checks cannot
//     interleave with the removal.
//
// Errors use sentinels (ErrNotFound, ErrUsernameExists) so callers can
// map them to responses with errors.Is.
package store
