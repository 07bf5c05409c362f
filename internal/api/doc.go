// Package api implements the HTTP surface of taskdeck.
//
// # Routes
//
//	POST   /signup       create an account            (public)
//	POST   /login        exchange credentials for JWT (public)
//	GET    /health       liveness check               (public)
//	GET    /todos        list the caller's tasks      (bearer token)
//	POST   /add          create a task                (bearer token)
//	DELETE /delete/{id}  delete an owned task         (bearer token)
//
// All request and response bodies are JSON; error responses carry a
// single "message" field with a fixed string per failure mode. Several
// response quirks (200 on add, trailing spaces in two messages, the
// wording of the add validation error) are preserved from the observed
// contract and must not be "fixed".
//
// Handlers read the caller's identity from the request context, placed
// there by the auth middleware. They hold no state beyond injected
// dependencies and map every failure locally onto one response; nothing
// propagates past a handler uncaught.
package api
