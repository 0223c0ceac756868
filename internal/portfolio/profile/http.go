// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	requestutil "github.com/dwikiramdani/kiramdashboard/internal/platform/request"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET and PUT /api/profile.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getProfile)
	router.With(middleware.RequireAuth).Put("/", handler.updateProfile)
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Update(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
