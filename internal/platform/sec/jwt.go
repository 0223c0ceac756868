// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, API keys,
// session token signing) from the domain logic. The token service is injected
// into the identity layer through its TokenIssuer and TokenVerifier interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a session token.
//
// Embedding the id, username and role lets the resolver rebuild the
// [Principal] without touching the document store.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// Principal converts the claims into the request identity.
func (claims *AuthClaims) Principal() *Principal {
	return &Principal{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     UserRole(claims.Role),
	}
}

// IssuedToken is a freshly signed token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 session tokens with a process-wide secret.
//
// The secret is handed in once at construction and never changes for the
// lifetime of the service; rotating it means building a new service, which
// invalidates every outstanding token.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token ttl must be positive")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &TokenService{
		secret: key,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads time from now.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

// TTL returns the fixed lifetime of issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed token for the principal, valid for [TokenService.TTL].
func (service *TokenService) Issue(principal Principal) (*IssuedToken, error) {
	issuedAt := service.now()
	expiresAt := issuedAt.Add(service.ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   principal.ID,
		Username: principal.Username,
		Role:     string(principal.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return &IssuedToken{Token: signedToken, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks signature, algorithm, issuer and the [issuedAt, expiresAt) window.
//
// Every failure (malformed, bad signature, expired, not yet valid) collapses
// into ok == false so callers cannot tell them apart.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, bool) {
	if tokenString == "" {
		return nil, false
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	if claims.UserID == "" {
		return nil, false
	}

	return claims, true
}
