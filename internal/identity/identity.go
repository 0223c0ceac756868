// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

/*
Package identity implements authentication for the single dashboard admin.

# Architecture

  - Service: login, API key regeneration and the "me" lookup.
  - Resolver: turns presented credentials into a [sec.Principal].
  - Repository: reads and updates the identity record in the document store.
  - LoginThrottle: counts failed logins per client (memory or Redis).

Verification never returns an error for bad credentials: it returns a
negative result, and the service maps every failed login to the same
"Invalid credentials" response.
*/
package identity

import (
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

// # Domain Entities

// Identity is the administrative account.
type Identity struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Role           sec.UserRole `json:"role"`
	HasAPIKey      bool         `json:"hasApiKey"`
	APIKeyIssuedAt *time.Time   `json:"apiKeyIssuedAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`

	PasswordHash string `json:"-"`
	APIKeyDigest string `json:"-"`
}

// Principal returns the request identity for this account.
func (identity *Identity) Principal() *sec.Principal {
	return &sec.Principal{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     sec.RoleAdmin,
	}
}

// LoginSession is the result of a successful login.
type LoginSession struct {
	Token     string        `json:"token"`
	TokenType string        `json:"tokenType"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      sec.Principal `json:"user"`
}

// GeneratedAPIKey carries a freshly minted key. The raw value is only ever
// available here; the store keeps its digest.
type GeneratedAPIKey struct {
	APIKey   string    `json:"apiKey"`
	IssuedAt time.Time `json:"issuedAt"`
	Message  string    `json:"message"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// # Resolution Methods

// Values reported to the request logger by [Resolver.Resolve].
const (
	MethodToken  = "token"
	MethodAPIKey = "api_key"
)
