// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package constants holds fixed values shared across layers: server timing,
// rate limits, credential headers and content defaults.
package constants

import "time"

const (
	AppName    = "kiramdashboard"
	AppVersion = "1.0.0"
)

// # Server Timing

const (
	// Read and write timeouts leave room for a full upload.
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a handler and any SQL statement it issues.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 15 * time.Second
)

// # Rate Limiting

const (
	// Per client IP.
	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 40

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Credentials

const (
	// AuthIssuer is the iss claim of every session token.
	AuthIssuer = "kiramdashboard"

	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-Api-Key"
	BearerScheme        = "Bearer"

	RedisPrefixLoginFailures = "auth:login_failures:"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Health Fields

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Content Defaults

const (
	// DefaultProfilePicture is written by cmd/setup.
	DefaultProfilePicture = "/uploads/default-avatar.png"

	// DefaultProjectImage fills in projects created without an image.
	DefaultProjectImage = "/uploads/default-project.png"

	UploadURLPrefix = "/uploads/"
)
