// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package middleware holds the HTTP chain wrapped around every route.
//
// Order matters: RequestID and StructuredLogger run first so later layers
// can log with the request id, and Authenticate (authz.go) runs inside them
// so the access log can name the caller.
package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
)

// # Request Tracing

// RequestID echoes the caller's X-Request-ID or mints a UUIDv7, and stores
// it on the context and the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to [http.ResponseController].
func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

// StructuredLogger logs every request with its status and latency.
// It also injects a request-scoped logger into the context.
//
// It runs outside [Authenticate], which reports the resolved user id back
// through a slot on the context.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()
			ip := RealIP(request)

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", ip),
			)

			slot := &principalSlot{}
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx = context.WithValue(ctx, principalSlotKey{}, slot)
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			logLevel := slog.LevelInfo
			switch {
			case wrappedWriter.status >= http.StatusInternalServerError:
				logLevel = slog.LevelError
			case wrappedWriter.status >= http.StatusBadRequest:
				logLevel = slog.LevelWarn
			}

			attrs := []any{
				slog.Int("status", wrappedWriter.status),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if slot.userID != "" {
				attrs = append(attrs, slog.String("user_id", slot.userID), slog.String("auth", slot.method))
			}

			requestLogger.Log(ctx, logLevel, "http_request_finished", attrs...)
		})
	}
}

type principalSlotKey struct{}

// principalSlot lets [Authenticate] report the resolved identity back to
// [StructuredLogger], which runs outside it.
type principalSlot struct {
	userID string
	method string
}

func recordPrincipal(ctx context.Context, userID, method string) {
	if slot, ok := ctx.Value(principalSlotKey{}).(*principalSlot); ok {
		slot.userID = userID
		slot.method = method
	}
}

// # Rate Limiting

// ipLimiters keeps one token bucket per client address.
type ipLimiters struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (limiters *ipLimiters) allow(ip string, now time.Time) bool {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	entry, found := limiters.buckets[ip]
	if !found {
		entry = &bucket{limiter: rate.NewLimiter(limiters.rps, limiters.burst)}
		limiters.buckets[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (limiters *ipLimiters) evictIdle(now time.Time) {
	limiters.mu.Lock()
	defer limiters.mu.Unlock()

	for ip, entry := range limiters.buckets {
		if now.Sub(entry.lastSeen) > constants.RateLimitClientTTL {
			delete(limiters.buckets, ip)
		}
	}
}

// RateLimit answers 429 once a client IP drains its bucket. Idle buckets are
// swept until ctx is cancelled.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	limiters := &ipLimiters{rps: rate.Limit(rps), burst: burst, buckets: map[string]*bucket{}}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				limiters.evictIdle(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limiters.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, apperr.RateLimited(1))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Panic Recovery

// PanicRecovery turns a handler panic into a logged 500. http.ErrAbortHandler
// is re-raised so net/http can drop the connection.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)
				respond.Error(writer, request, apperr.Internal(nil))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// OriginPolicy decides which browser origins may call the API.
type OriginPolicy interface {
	OriginAllowed(origin string) bool
}

// CORS answers pre-flight requests and decorates responses for allowed origins.
func CORS(policy OriginPolicy) func(http.Handler) http.Handler {
	allowHeaders := strings.Join([]string{
		"Accept", "Content-Type", "Content-Length",
		constants.HeaderAuthorization, constants.HeaderAPIKey, constants.HeaderXRequestID,
	}, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if policy.OriginAllowed(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", allowHeaders)
				header.Set("Access-Control-Expose-Headers", "Content-Length, "+constants.HeaderXRequestID)
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != "" {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Client Address

// ProxyPolicy decides which peers may speak for the client through
// X-Forwarded-For and X-Real-IP.
type ProxyPolicy interface {
	ProxyTrusted(addr netip.Addr) bool
}

// ClientIP resolves the caller address once and stores it on the context.
// Forwarding headers count only when the socket peer is a trusted proxy.
// Register it before anything that calls [RealIP].
func ClientIP(policy ProxyPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ip := resolveClientIP(request, policy)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClientIP(request.Context(), ip)))
		})
	}
}

// RealIP returns the address stored by [ClientIP], or the socket peer when
// the middleware did not run. Request headers are never read here.
func RealIP(request *http.Request) string {
	if ip := ctxutil.GetClientIP(request.Context()); ip != "" {
		return ip
	}
	return peerHost(request)
}

func resolveClientIP(request *http.Request, policy ProxyPolicy) string {
	peer := peerHost(request)
	peerAddr, err := netip.ParseAddr(peer)
	if err != nil || policy == nil || !policy.ProxyTrusted(peerAddr) {
		return peer
	}

	// Walk the chain right to left; the first hop that is not one of our
	// proxies is the client.
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			if i == 0 || !policy.ProxyTrusted(hop) {
				return hop.Unmap().String()
			}
		}
	}

	if realIP, err := netip.ParseAddr(strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP))); err == nil {
		return realIP.Unmap().String()
	}
	return peer
}

func peerHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
