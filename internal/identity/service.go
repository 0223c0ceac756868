// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

// # Contracts & Types

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(principal sec.Principal) (*sec.IssuedToken, error)
}

// TokenVerifier checks session tokens.
type TokenVerifier interface {
	Verify(token string) (*sec.AuthClaims, bool)
}

// Service implements the identity use cases.
type Service struct {
	repository Repository
	tokens     TokenIssuer
	throttle   LoginThrottle

	// dummyHash is verified when the username is unknown so that both
	// failure paths cost one key derivation.
	dummyHash string
	now       func() time.Time
}

// NewService constructs a [Service].
func NewService(repository Repository, tokens TokenIssuer, throttle LoginThrottle) (*Service, error) {
	dummyHash, err := sec.HashPassword("kiramdashboard-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("identity: prepare dummy hash: %w", err)
	}

	return &Service{
		repository: repository,
		tokens:     tokens,
		throttle:   throttle,
		dummyHash:  dummyHash,
		now:        time.Now,
	}, nil
}

// # Authentication Flow

// LoginInput defines the credentials of an authentication attempt.
type LoginInput struct {
	Username string
	Password string

	// ClientKey identifies the caller for throttling, usually its IP.
	ClientKey string
}

/*
Login verifies the admin credentials and issues a session token.

Unknown usernames and wrong passwords produce the same error and run the same
key derivation. Too many failures from one client produce 429 until the
lockout window passes.

Returns:
  - *LoginSession: token, expiry and principal
  - error: apperr.InvalidCredentials, apperr.RateLimited or store failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	logger := ctxutil.GetLogger(context)

	if retryAfter := service.lockedFor(context, input.ClientKey); retryAfter > 0 {
		logger.WarnContext(context, "login_throttled", slog.Duration("retry_after", retryAfter))
		return nil, apperr.RateLimited(int(math.Ceil(retryAfter.Seconds())))
	}

	identity, err := service.repository.Get(context)
	if err != nil {
		return nil, err
	}

	usernameMatches := subtle.ConstantTimeCompare([]byte(input.Username), []byte(identity.Username)) == 1

	storedHash := identity.PasswordHash
	if !usernameMatches {
		storedHash = service.dummyHash
	}
	passwordMatches := sec.CheckPasswordHash(input.Password, storedHash)

	if !usernameMatches || !passwordMatches {
		reason := "bad_password"
		if !usernameMatches {
			reason = "unknown_user"
		}
		logger.WarnContext(context, "login_failed", slog.String("reason", reason))
		service.recordFailure(context, input.ClientKey)
		return nil, apperr.InvalidCredentials()
	}

	service.resetFailures(context, input.ClientKey)

	principal := identity.Principal()
	issued, err := service.tokens.Issue(*principal)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("identity: issue token: %w", err))
	}

	logger.InfoContext(context, "login_succeeded", slog.String("user_id", principal.ID))

	return &LoginSession{
		Token:     issued.Token,
		TokenType: constants.BearerScheme,
		ExpiresAt: issued.ExpiresAt,
		User:      *principal,
	}, nil
}

// # API Key Lifecycle

/*
RegenerateAPIKey mints a new API key for the principal and replaces the
stored digest. The previous key is rejected from the moment this returns.

Returns:
  - *GeneratedAPIKey: the raw key, shown to the caller once
  - error: entropy or store failures
*/
func (service *Service) RegenerateAPIKey(context context.Context, principal *sec.Principal) (*GeneratedAPIKey, error) {
	if principal == nil {
		return nil, apperr.AuthenticationRequired()
	}

	key, err := sec.GenerateAPIKey()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	issuedAt := service.now().UTC()
	if err := service.repository.ReplaceAPIKey(context, principal.ID, sec.HashAPIKey(key), issuedAt); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "api_key_regenerated", slog.String("user_id", principal.ID))

	return &GeneratedAPIKey{
		APIKey:   key,
		IssuedAt: issuedAt,
		Message:  "Store this key now. It will not be shown again.",
	}, nil
}

// # Current Identity

// Me returns the account behind principal.
//
// A principal that no longer matches the provisioned identity (for example a
// token minted before the document was re-provisioned) is treated as anonymous.
func (service *Service) Me(context context.Context, principal *sec.Principal) (*Identity, error) {
	if principal == nil {
		return nil, apperr.AuthenticationRequired()
	}

	identity, err := service.repository.Get(context)
	if err != nil {
		return nil, err
	}

	if identity.ID != principal.ID {
		return nil, apperr.AuthenticationRequired()
	}
	return identity, nil
}

// # Throttle Helpers

// Throttle errors are logged and otherwise ignored.

func (service *Service) lockedFor(context context.Context, key string) time.Duration {
	if service.throttle == nil || key == "" {
		return 0
	}
	retryAfter, err := service.throttle.Locked(context, key)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", slog.Any("error", err))
		return 0
	}
	return retryAfter
}

func (service *Service) recordFailure(context context.Context, key string) {
	if service.throttle == nil || key == "" {
		return
	}
	if err := service.throttle.Fail(context, key); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", slog.Any("error", err))
	}
}

func (service *Service) resetFailures(context context.Context, key string) {
	if service.throttle == nil || key == "" {
		return
	}
	if err := service.throttle.Reset(context, key); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", slog.Any("error", err))
	}
}
