// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package project

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

// RegisterRoutes mounts the project endpoints under /api/projects.
// GET /{id} accepts either the id or the slug.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listProjects)
	router.Get("/{id}", handler.getProject)

	// Admin
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAuth)

		adminRoute.Post("/", handler.createProject)
		adminRoute.Put("/{id}", handler.updateProject)
		adminRoute.Delete("/{id}", handler.deleteProject)
	})
}

func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	projects, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, meta := pagination.Window(projects, pagination.FromRequest(request))
	respond.Paginated(writer, page, meta)
}

func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	project, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, project)
}

func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	project, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, project)
}

func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
