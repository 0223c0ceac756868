// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"context"
	"log/slog"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

// Resolver maps request credentials to a principal.
//
// It satisfies middleware.PrincipalResolver.
type Resolver struct {
	tokens     TokenVerifier
	repository Repository
}

// NewResolver creates a [Resolver].
func NewResolver(tokens TokenVerifier, repository Repository) *Resolver {
	return &Resolver{tokens: tokens, repository: repository}
}

/*
Resolve returns the principal for the first valid credential, or nil.

Order:
 1. A bearer token that verifies.
 2. An API key whose digest matches the stored one.

An invalid token does not hide a valid API key on the same request.

Returns:
  - *sec.Principal: nil for anonymous
  - string: [MethodToken] or [MethodAPIKey]
*/
func (resolver *Resolver) Resolve(context context.Context, bearerToken, apiKey string) (*sec.Principal, string) {
	if bearerToken != "" {
		if claims, ok := resolver.tokens.Verify(bearerToken); ok {
			return claims.Principal(), MethodToken
		}
	}

	if apiKey == "" {
		return nil, ""
	}

	identity, err := resolver.repository.Get(context)
	if err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "api_key_lookup_failed", slog.Any("error", err))
		return nil, ""
	}

	if sec.MatchAPIKey(apiKey, identity.APIKeyDigest) {
		return identity.Principal(), MethodAPIKey
	}
	return nil, ""
}
