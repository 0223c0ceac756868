// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
)

func newRouter(f *fixture) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(f.resolver))
	identity.NewHandler(f.service).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for name, value := range headers {
		request.Header.Set(name, value)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder, payload
}

/*
TestHandler_LoginFlow covers login, me and key regeneration over HTTP.
*/
func TestHandler_LoginFlow(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder, payload := doJSON(t, router, http.MethodPost, "/login",
		`{"username":"kiram","password":"g4nt3ng$b4ng3t"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	data := payload["data"].(map[string]any)
	token := data["token"].(string)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Bearer", data["tokenType"])
	assert.NotContains(t, data, "apiKey")

	recorder, payload = doJSON(t, router, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "kiram", payload["data"].(map[string]any)["username"])
	assert.NotContains(t, recorder.Body.String(), "passwordHash")

	recorder, payload = doJSON(t, router, http.MethodPost, "/regenerate-api-key", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, recorder.Code)
	apiKey := payload["data"].(map[string]any)["apiKey"].(string)

	recorder, _ = doJSON(t, router, http.MethodGet, "/me", "", map[string]string{"X-Api-Key": apiKey})
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHandler_LoginErrors covers validation and credential failures.
*/
func TestHandler_LoginErrors(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed_json", `{"username":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_password", `{"username":"kiram"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown_user", `{"username":"ghost","password":"x"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong_password", `{"username":"kiram","password":"x"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, payload := doJSON(t, router, http.MethodPost, "/login", tt.body, nil)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode, payload["code"])
		})
	}
}

/*
TestHandler_ProtectedRoutesRequireAuth rejects anonymous callers.
*/
func TestHandler_ProtectedRoutesRequireAuth(t *testing.T) {
	router := newRouter(newFixture(t))

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/regenerate-api-key"},
		{http.MethodGet, "/me"},
	} {
		recorder, payload := doJSON(t, router, route.method, route.path, "", map[string]string{"Authorization": "Bearer forged"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, route.path)
		assert.Equal(t, "Authentication required", payload["error"])
	}
}
