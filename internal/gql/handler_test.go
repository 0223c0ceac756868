// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package gql_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/gql"
	"github.com/dwikiramdani/kiramdashboard/internal/identity"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/experience"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/profile"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/project"
)

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	hash, err := sec.HashPassword("g4nt3ng$b4ng3t")
	require.NoError(t, err)

	backend := docstore.NewFileBackend(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, docstore.Provision(ctx, backend, &docstore.Document{
		Identity: docstore.IdentityRecord{ID: "1", Username: "kiram", PasswordHash: hash},
		Profile:  docstore.ProfileRecord{Headline: "Full Stack Developer", Techstack: []string{"Go"}},
	}, false))

	store, err := docstore.Open(ctx, backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	tokens, err := sec.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), "kiramdashboard", time.Hour)
	require.NoError(t, err)

	identities := identity.NewDocumentRepository(store)
	identityService, err := identity.NewService(identities, tokens, identity.NewMemoryThrottle(5, time.Minute))
	require.NoError(t, err)

	schema, err := gql.NewSchema(gql.Services{
		Identity:   identityService,
		Profile:    profile.NewService(profile.NewDocumentRepository(store)),
		Experience: experience.NewService(experience.NewDocumentRepository(store)),
		Project:    project.NewService(project.NewDocumentRepository(store)),
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(identity.NewResolver(tokens, identities)))
	router.Route("/graphql", gql.NewHandler(schema).RegisterRoutes)
	return router
}

func post(t *testing.T, router http.Handler, token, query string, variables map[string]any) (int, response) {
	t.Helper()

	body, err := json.Marshal(gql.Request{Query: query, Variables: variables})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var payload response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return recorder.Code, payload
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	_, payload := post(t, router, "", `mutation { login(username: "kiram", password: "g4nt3ng$b4ng3t") { token user { username role } } }`, nil)
	require.Empty(t, payload.Errors)

	var session struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(payload.Data["login"], &session))
	require.Equal(t, "admin", session.User.Role)
	return session.Token
}

/*
TestQueries_Public reads content without credentials.
*/
func TestQueries_Public(t *testing.T) {
	router := newRouter(t)

	status, payload := post(t, router, "", `{ profile { headline techstack } experiences { id } projects { id } me { id } }`, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, payload.Errors)

	assert.JSONEq(t, `{"headline":"Full Stack Developer","techstack":["Go"]}`, string(payload.Data["profile"]))
	assert.JSONEq(t, `[]`, string(payload.Data["experiences"]))
	assert.JSONEq(t, `[]`, string(payload.Data["projects"]))
	assert.JSONEq(t, `null`, string(payload.Data["me"]))
}

/*
TestMutations_RequireAuth returns an UNAUTHORIZED error for anonymous writes.
*/
func TestMutations_RequireAuth(t *testing.T) {
	router := newRouter(t)

	mutations := []string{
		`mutation { addExperience(title: "t", company: "c", startDate: "2024-01") { id } }`,
		`mutation { updateProfile(headline: "x") { headline } }`,
		`mutation { deleteProject(id: "nope") }`,
		`mutation { regenerateApiKey { apiKey } }`,
	}

	for _, mutation := range mutations {
		status, payload := post(t, router, "", mutation, nil)
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, payload.Errors, 1, mutation)
		assert.Equal(t, "UNAUTHORIZED", payload.Errors[0].Extensions["code"])
	}

	_, payload := post(t, router, "", `{ profile { headline } }`, nil)
	assert.JSONEq(t, `{"headline":"Full Stack Developer"}`, string(payload.Data["profile"]))
}

/*
TestMutations_ExperienceLifecycle drives create, partial update and delete.
*/
func TestMutations_ExperienceLifecycle(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	_, payload := post(t, router, token,
		`mutation($endDate: String) { addExperience(title: "Engineer", company: "Acme", startDate: "2022-01", endDate: $endDate, current: true) { id endDate current } }`,
		map[string]any{"endDate": "2023-01"})
	require.Empty(t, payload.Errors)

	var created struct {
		ID      string  `json:"id"`
		EndDate *string `json:"endDate"`
		Current bool    `json:"current"`
	}
	require.NoError(t, json.Unmarshal(payload.Data["addExperience"], &created))
	assert.Nil(t, created.EndDate)
	assert.True(t, created.Current)

	_, payload = post(t, router, token,
		`mutation($id: ID!) { updateExperience(id: $id, company: "Acme Corp", title: "") { title company } }`,
		map[string]any{"id": created.ID})
	require.Empty(t, payload.Errors)
	assert.JSONEq(t, `{"title":"Engineer","company":"Acme Corp"}`, string(payload.Data["updateExperience"]))

	_, payload = post(t, router, token, `mutation($id: ID!) { deleteExperience(id: $id) }`, map[string]any{"id": created.ID})
	require.Empty(t, payload.Errors)
	assert.JSONEq(t, `true`, string(payload.Data["deleteExperience"]))

	_, payload = post(t, router, "", `query($id: ID!) { experience(id: $id) { id } }`, map[string]any{"id": created.ID})
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "NOT_FOUND", payload.Errors[0].Extensions["code"])
}

/*
TestMutations_ProjectValidation surfaces field details as extensions.
*/
func TestMutations_ProjectValidation(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	_, payload := post(t, router, token, `mutation { addProject(title: "", description: "d") { id } }`, nil)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "VALIDATION_ERROR", payload.Errors[0].Extensions["code"])
	assert.NotEmpty(t, payload.Errors[0].Extensions["details"])

	_, payload = post(t, router, token, `mutation { addProject(title: "My Site", description: "d") { slug image technologies } }`, nil)
	require.Empty(t, payload.Errors)
	assert.JSONEq(t, `{"slug":"my-site","image":"/uploads/default-project.png","technologies":[]}`, string(payload.Data["addProject"]))

	_, payload = post(t, router, "", `{ project(id: "my-site") { title } }`, nil)
	require.Empty(t, payload.Errors)
	assert.JSONEq(t, `{"title":"My Site"}`, string(payload.Data["project"]))
}

/*
TestHandler_Transport covers GET queries, mutations refused over GET and unreadable requests.
*/
func TestHandler_Transport(t *testing.T) {
	router := newRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`{ profile { headline } }`), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Full Stack Developer")

	status, payload := post(t, router, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "Must provide query string", payload.Errors[0].Message)

	get := func(query, operationName string) *httptest.ResponseRecorder {
		values := url.Values{"query": {query}}
		if operationName != "" {
			values.Set("operationName", operationName)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil))
		return recorder
	}

	t.Run("mutation_over_get", func(t *testing.T) {
		recorder := get(`mutation { login(username: "kiram", password: "g4nt3ng$b4ng3t") { token } }`, "")
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		assert.Equal(t, http.MethodPost, recorder.Header().Get("Allow"))

		var payload response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
		assert.Empty(t, payload.Data)
		require.Len(t, payload.Errors, 1)
	})

	t.Run("named_mutation_over_get", func(t *testing.T) {
		document := `query Public { profile { headline } } mutation Write { deleteProject(id: "x") }`
		assert.Equal(t, http.StatusMethodNotAllowed, get(document, "Write").Code)
		assert.Equal(t, http.StatusOK, get(document, "Public").Code)
	})
}
