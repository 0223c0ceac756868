// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

// stubResolver accepts exactly one token and one key.
type stubResolver struct {
	calls int
}

func (stub *stubResolver) Resolve(_ context.Context, bearerToken, apiKey string) (*sec.Principal, string) {
	stub.calls++
	switch {
	case bearerToken == "good-token":
		return &sec.Principal{ID: "1", Username: "kiram", Role: sec.RoleAdmin}, "token"
	case apiKey == "good-key":
		return &sec.Principal{ID: "1", Username: "kiram", Role: sec.RoleAdmin}, "api_key"
	default:
		return nil, ""
	}
}

// echoPrincipal writes the principal id, or "anonymous".
var echoPrincipal = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if principal := ctxutil.GetPrincipal(request.Context()); principal != nil {
		_, _ = writer.Write([]byte(principal.ID))
		return
	}
	_, _ = writer.Write([]byte("anonymous"))
})

/*
TestCredentials covers header parsing rules.
*/
func TestCredentials(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		apiKey        string
		wantToken     string
		wantKey       string
	}{
		{"bearer", "Bearer abc", "", "abc", ""},
		{"lowercase_scheme", "bearer abc", "", "abc", ""},
		{"basic_scheme", "Basic abc", "", "", ""},
		{"missing_token", "Bearer", "", "", ""},
		{"api_key_only", "", " kd_123 ", "", "kd_123"},
		{"both", "Bearer abc", "kd_123", "abc", "kd_123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authorization != "" {
				request.Header.Set("Authorization", tt.authorization)
			}
			if tt.apiKey != "" {
				request.Header.Set("X-Api-Key", tt.apiKey)
			}

			token, key := middleware.Credentials(request)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

/*
TestAuthenticate_NeverRejects checks that bad credentials leave the request anonymous.
*/
func TestAuthenticate_NeverRejects(t *testing.T) {
	resolver := &stubResolver{}
	handler := middleware.Authenticate(resolver)(echoPrincipal)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"no_credentials", nil, "anonymous"},
		{"bad_token", map[string]string{"Authorization": "Bearer nope"}, "anonymous"},
		{"good_token", map[string]string{"Authorization": "Bearer good-token"}, "1"},
		{"good_key", map[string]string{"X-Api-Key": "good-key"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			for name, value := range tt.headers {
				request.Header.Set(name, value)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.want, recorder.Body.String())
		})
	}

	assert.Equal(t, 3, resolver.calls, "resolver is skipped when no credentials are presented")
}

/*
TestRequireAuth rejects anonymous callers with the standard envelope.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.Authenticate(&stubResolver{})(middleware.RequireAuth(echoPrincipal))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeUnauthorized, envelope.Code)
	assert.Equal(t, "Authentication required", envelope.Error)

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("X-Api-Key", "good-key")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole distinguishes anonymous (401) from insufficient role (403).
*/
func TestRequireRole(t *testing.T) {
	guard := middleware.RequireRole(sec.RoleAdmin)(echoPrincipal)

	recorder := httptest.NewRecorder()
	guard.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	viewer := &sec.Principal{ID: "2", Role: sec.RoleViewer}
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), viewer))
	recorder = httptest.NewRecorder()
	guard.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

/*
TestCORS checks allowed and denied origins plus pre-flight handling.
*/
func TestCORS(t *testing.T) {
	policy := originList{"https://kiram.dev": true}
	handler := middleware.CORS(policy)(echoPrincipal)

	request := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	request.Header.Set("Origin", "https://kiram.dev")
	request.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://kiram.dev", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Headers"), "X-Api-Key")

	request = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

type originList map[string]bool

func (list originList) OriginAllowed(origin string) bool { return list[origin] }

/*
TestRateLimit rejects requests once the burst is spent.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(echoPrincipal)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

/*
TestPanicRecovery converts a panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

type proxyList []netip.Prefix

func (list proxyList) ProxyTrusted(addr netip.Addr) bool {
	for _, prefix := range list {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

/*
TestClientIP believes forwarding headers only from trusted peers.
*/
func TestClientIP(t *testing.T) {
	proxies := proxyList{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name     string
		peer     string
		headers  map[string]string
		expected string
	}{
		{"untrusted_peer_ignores_real_ip", "192.0.2.1:1234", map[string]string{"X-Real-IP": "198.51.100.7"}, "192.0.2.1"},
		{"untrusted_peer_ignores_forwarded", "192.0.2.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "192.0.2.1"},
		{"trusted_peer_no_headers", "10.0.0.2:80", nil, "10.0.0.2"},
		{"trusted_peer_forwarded", "10.0.0.2:80", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"skips_trusted_hops", "10.0.0.2:80", map[string]string{"X-Forwarded-For": "198.51.100.1, 203.0.113.5, 10.0.0.9"}, "203.0.113.5"},
		{"all_hops_trusted", "10.0.0.2:80", map[string]string{"X-Forwarded-For": "10.1.1.1, 10.0.0.9"}, "10.1.1.1"},
		{"trusted_peer_real_ip", "10.0.0.2:80", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"garbage_header", "10.0.0.2:80", map[string]string{"X-Real-IP": "not-an-ip"}, "10.0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.ClientIP(proxies)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = middleware.RealIP(request)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.peer
			for name, value := range tt.headers {
				request.Header.Set(name, value)
			}
			handler.ServeHTTP(httptest.NewRecorder(), request)

			assert.Equal(t, tt.expected, seen)
		})
	}
}

/*
TestRealIP_WithoutClientIP falls back to the socket peer and never reads headers.
*/
func TestRealIP_WithoutClientIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	request.Header.Set("X-Real-IP", "198.51.100.7")
	request.Header.Set("X-Forwarded-For", "203.0.113.5")

	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))
}
