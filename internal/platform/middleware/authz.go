// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

// PrincipalResolver maps presented credentials to an identity.
//
// Defined here so the middleware does not depend on the identity package;
// tests inject a stub.
type PrincipalResolver interface {
	Resolve(ctx context.Context, bearerToken, apiKey string) (*sec.Principal, string)
}

// Credentials extracts the bearer token and API key headers.
//
// The scheme match is case-insensitive. A malformed Authorization header
// yields an empty token rather than an error.
func Credentials(request *http.Request) (bearerToken, apiKey string) {
	if header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization)); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, constants.BearerScheme) {
			bearerToken = strings.TrimSpace(token)
		}
	}

	apiKey = strings.TrimSpace(request.Header.Get(constants.HeaderAPIKey))
	return bearerToken, apiKey
}

// Authenticate resolves the request's credentials and attaches the principal.
//
// # Flow
//  1. Extract "Authorization: Bearer" and "X-Api-Key".
//  2. Ask the resolver; the first valid credential wins.
//  3. Attach the [*sec.Principal] to the context, or leave the request anonymous.
//
// It never rejects a request. Guards such as [RequireAuth] decide what an
// anonymous caller may do.
func Authenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			bearerToken, apiKey := Credentials(request)
			if bearerToken == "" && apiKey == "" {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := request.Context()
			principal, method := resolver.Resolve(ctx, bearerToken, apiKey)
			if principal == nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "credentials_rejected",
					slog.Bool("bearer", bearerToken != ""),
					slog.Bool("api_key", apiKey != ""),
				)
				next.ServeHTTP(writer, request)
				return
			}

			recordPrincipal(ctx, principal.ID, method)
			logger := ctxutil.GetLogger(ctx).With(slog.String("user_id", principal.ID))

			ctx = ctxutil.WithPrincipal(ctx, principal)
			ctx = ctxutil.WithLogger(ctx, logger)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests with 401.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.AuthenticationRequired())
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal is below role.
//
// It implies [RequireAuth]: anonymous callers get 401, authenticated callers
// with an insufficient role get 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			if principal == nil {
				respond.Error(writer, request, apperr.AuthenticationRequired())
				return
			}

			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
