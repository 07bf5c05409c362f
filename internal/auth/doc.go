// Package auth provides bearer-token authentication for taskdeck.
//
// # Tokens
//
// Tokens are HS256-signed JWTs issued at login with a fixed validity
// window. The claim set is {sub: user ID, username, iat, exp}. Tokens are
// stateless: verification recomputes the signature and checks expiry on
// every request, and there is no server-side revocation.
//
// # The auth gate
//
// Middleware intercepts every protected request and enforces the header
// contract exactly:
//
//   - no Authorization header     -> 401 "access denied"
//   - not exactly "Bearer <tok>"  -> 401 "invalid token format"
//   - signature/expiry failure    -> 401 "invalid token"
//
// On success the verified Identity is attached to the request context;
// handlers read it with MustFromContext. The gate has no side effects
// beyond populating the request-scoped identity.
package auth
