// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package ctxkey holds the context keys shared by middleware, handlers and
// resolvers. Values are read and written through package ctxutil.
package ctxkey

// key is unexported so no other package can build a colliding key.
type key string

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyPrincipal carries the resolved *sec.Principal; absent for anonymous requests.
	KeyPrincipal key = "principal"

	// KeyLogger carries the request-scoped *slog.Logger.
	KeyLogger key = "logger"

	// KeyClientIP carries the client address used for login throttling.
	KeyClientIP key = "client_ip"
)
