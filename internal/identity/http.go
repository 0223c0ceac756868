// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	requestutil "github.com/dwikiramdani/kiramdashboard/internal/platform/request"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the identity endpoints to the /api router.
//
// # Endpoints
//   - POST /login              : exchanges credentials for a session token
//   - POST /regenerate-api-key : replaces the API key (admin)
//   - GET  /me                 : current identity (auth)
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.With(middleware.RequireAuth).Get("/me", handler.me)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/regenerate-api-key", handler.regenerateAPIKey)
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Login authenticates the admin.

POST /api/login

Request:
  - Body: loginRequest (username, password)

Response:
  - 200: LoginSession
  - 400: missing fields
  - 401: Invalid credentials
  - 429: too many failed attempts from this client
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Username:  input.Username,
		Password:  input.Password,
		ClientKey: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
RegenerateAPIKey replaces the admin API key.

POST /api/regenerate-api-key

Response:
  - 200: GeneratedAPIKey (the raw key is returned only here)
  - 401: Authentication required
*/
func (handler *Handler) regenerateAPIKey(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	generated, err := handler.service.RegenerateAPIKey(request.Context(), principal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, generated)
}

// me handles GET /api/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.service.Me(request.Context(), principal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}
