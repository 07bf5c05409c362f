// ABOUTME: Tests for the HTTP auth middleware
// ABOUTME: Covers the exact header contract: missing, malformed, invalid, and valid tokens

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestCodec(t *testing.T) *JWTCodec {
	t.Helper()
	return NewJWTCodec([]byte("test-secret-key-for-jwt-signing"))
}

// doRequest runs a request through the middleware with the given
// Authorization header and returns the recorder plus the identity the
// inner handler observed (zero if never reached).
func doRequest(t *testing.T, codec TokenCodec, authHeader string) (*httptest.ResponseRecorder, Identity, bool) {
	t.Helper()

	var seen Identity
	var reached bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, reached = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	Middleware(codec)(inner).ServeHTTP(rec, req)
	return rec, seen, reached
}

// assertMessage decodes the JSON body and checks the message field.
func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
	if body.Message != want {
		t.Errorf("message = %q, want %q", body.Message, want)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	rec, _, reached := doRequest(t, newTestCodec(t), "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "access denied")
	if reached {
		t.Error("inner handler should not run without a token")
	}
}

func TestMiddleware_WrongScheme(t *testing.T) {
	rec, _, reached := doRequest(t, newTestCodec(t), "Token abc")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "invalid token format")
	if reached {
		t.Error("inner handler should not run with a malformed header")
	}
}

func TestMiddleware_TooManyParts(t *testing.T) {
	rec, _, _ := doRequest(t, newTestCodec(t), "Bearer abc def")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "invalid token format")
}

func TestMiddleware_BareScheme(t *testing.T) {
	rec, _, _ := doRequest(t, newTestCodec(t), "Bearer")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "invalid token format")
}

func TestMiddleware_InvalidToken(t *testing.T) {
	rec, _, reached := doRequest(t, newTestCodec(t), "Bearer not-a-real-token")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "invalid token")
	if reached {
		t.Error("inner handler should not run with an invalid token")
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	codec := newTestCodec(t)
	token, err := codec.Issue("user-123", "ann1", -time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec, _, reached := doRequest(t, codec, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "invalid token")
	if reached {
		t.Error("inner handler should not run with an expired token")
	}
}

func TestMiddleware_WrongSecret(t *testing.T) {
	other := NewJWTCodec([]byte("a-completely-different-secret"))
	token, err := other.Issue("user-123", "ann1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec, _, _ := doRequest(t, newTestCodec(t), "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertMessage(t, rec, "invalid token")
}

func TestMiddleware_ValidToken(t *testing.T) {
	codec := newTestCodec(t)
	token, err := codec.Issue("user-123", "ann1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec, seen, reached := doRequest(t, codec, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !reached {
		t.Fatal("inner handler should have run")
	}
	if seen.UserID != "user-123" || seen.Username != "ann1" {
		t.Errorf("identity = %+v, want user-123/ann1", seen)
	}
}
