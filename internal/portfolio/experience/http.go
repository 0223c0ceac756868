// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package experience

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	requestutil "github.com/dwikiramdani/kiramdashboard/internal/platform/request"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
	"github.com/dwikiramdani/kiramdashboard/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the experience endpoints under /api/experiences.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listExperiences)
	router.Get("/{id}", handler.getExperience)

	// Admin
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAuth)

		adminRoute.Post("/", handler.createExperience)
		adminRoute.Put("/{id}", handler.updateExperience)
		adminRoute.Delete("/{id}", handler.deleteExperience)
	})
}

func (handler *Handler) listExperiences(writer http.ResponseWriter, request *http.Request) {
	experiences, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, meta := pagination.Window(experiences, pagination.FromRequest(request))
	respond.Paginated(writer, page, meta)
}

func (handler *Handler) getExperience(writer http.ResponseWriter, request *http.Request) {
	experience, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, experience)
}

func (handler *Handler) createExperience(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	experience, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, experience)
}

func (handler *Handler) updateExperience(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	experience, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, experience)
}

func (handler *Handler) deleteExperience(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
