// Package auth provides JWT issuance/validation, password hashing, and the
// bearer-token middleware guarding protected routes.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. POST /register → password is bcrypt-hashed, user row created
// 2. POST /login → credentials verified, server mints TWO tokens:
//    - access token: short-lived, carries id + name + email
//    - refresh token: long-lived, carries the id only
// 3. Protected requests send "Authorization: Bearer <access token>"
// 4. POST /refresh with the refresh token as bearer mints a fresh access token
//
// The two token kinds are signed with DISTINCT secrets. A refresh token can
// never pass access-token validation (and vice versa) even if an attacker
// swaps them, because the HMAC check fails against the other secret.
//
// JWT STRUCTURE (three base64-encoded parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + token type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims (data) → {"sub":"42","exp":1234567890}
//	- Signature: HMAC-SHA256(header+"."+payload, secretKey)
//
// The server can verify the signature without any DB lookup - just the secret.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/photoapp/photoapp/internal/model"
)

const issuer = "photoapp"

// Identity is the resolved user identity carried by a valid access token.
// The guard middleware stores it in the request context; handlers read it
// back with IdentityFromContext.
type Identity struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

// TokenService mints and validates access and refresh tokens.
//
// It holds both HMAC secrets and both lifetimes, all injected from the
// configuration struct at startup. Nothing here reads the environment.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService.
// Secrets should be at least 32 bytes of random data in production
// (e.g. openssl rand -hex 32); we enforce a 16-character floor.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(accessSecret) < 16 || len(refreshSecret) < 16 {
		return nil, errors.New("auth: token secrets must be at least 16 characters")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("auth: access and refresh secrets must differ")
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// accessClaims is the access-token payload: registered claims plus the
// user's name and email, so the frontend can render a profile without an
// extra request. "sub" holds the user id as a decimal string.
type accessClaims struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// refreshClaims carries the id only. A leaked refresh token reveals nothing
// about the account beyond its numeric id.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// GenerateAccess mints a signed access token for the given user.
//
// Every token gets a unique "jti" (xid) so two tokens minted in the same
// second for the same user are still distinguishable.
func (s *TokenService) GenerateAccess(user *model.User) (string, error) {
	now := time.Now()

	c := accessClaims{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    issuer,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("auth: signing access token: %w", err)
	}
	return signed, nil
}

// GenerateRefresh mints a signed refresh token for the given user id.
func (s *TokenService) GenerateRefresh(userID int64) (string, error) {
	now := time.Now()

	c := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    issuer,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("auth: signing refresh token: %w", err)
	}
	return signed, nil
}

// ValidateAccess parses and verifies an access token, returning the Identity
// it encodes.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - Signature is valid against the ACCESS secret
//   - Token is not expired
//   - Issuer matches
//   - Algorithm is HS256 (jwt.WithValidMethods prevents algorithm-confusion
//     attacks where a token claims "none" or an asymmetric method)
func (s *TokenService) ValidateAccess(tokenStr string) (*Identity, error) {
	c := &accessClaims{}
	if err := s.parse(tokenStr, c, s.accessSecret); err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("auth: token subject %q is not a user id", c.Subject)
	}

	return &Identity{
		ID:        id,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}, nil
}

// ValidateRefresh parses and verifies a refresh token, returning the user id.
func (s *TokenService) ValidateRefresh(tokenStr string) (int64, error) {
	c := &refreshClaims{}
	if err := s.parse(tokenStr, c, s.refreshSecret); err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("auth: token subject %q is not a user id", c.Subject)
	}
	return id, nil
}

// parse runs the shared verification path for both token kinds.
func (s *TokenService) parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("auth: token expired")
		}
		return fmt.Errorf("auth: invalid token: %w", err)
	}
	if !token.Valid {
		return errors.New("auth: invalid token claims")
	}
	return nil
}
