// ABOUTME: JWT token issuance and verification for authenticating HTTP requests
// ABOUTME: Uses HS256 signing with configurable secret

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// TokenCodec defines the interface for issuing and verifying bearer tokens
type TokenCodec interface {
	Issue(userID, username string, ttl time.Duration) (string, error)
	Verify(tokenString string) (Identity, error)
}

// JWTCodec implements TokenCodec using HS256 signed JWTs.
// Tokens are self-contained; there is no server-side session table and
// no revocation list.
type JWTCodec struct {
	secret []byte
}

// NewJWTCodec creates a new JWT codec with the given secret
func NewJWTCodec(secret []byte) *JWTCodec {
	return &JWTCodec{secret: secret}
}

// Issue creates a new JWT carrying the user identity with an expiration.
// The user ID goes in the registered "sub" claim; the username rides along
// as a private claim.
func (c *JWTCodec) Issue(userID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify validates the token and reconstructs the identity claim.
// Verification recomputes the signature and rejects on mismatch or on an
// expiry timestamp in the past.
func (c *JWTCodec) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		// Check if it's specifically an expiration error
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return Identity{}, fmt.Errorf("%w: username", ErrMissingClaim)
	}

	return Identity{UserID: sub, Username: username}, nil
}
