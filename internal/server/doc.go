// Package server assembles the taskdeck process from configuration:
// store engine selection (SQLite or Postgres), the optional Redis task
// cache, the token codec, the API routes, and the HTTP middleware chain
// (panic recovery, request logging, CORS, optional Prometheus metrics).
//
// Run blocks until the context is canceled, then drains in-flight
// requests with a bounded graceful shutdown before closing the cache and
// store.
package server
