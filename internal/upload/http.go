// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
)

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead = 64 << 10

// maxMemory is how much of a multipart body is buffered before spilling to disk.
const maxMemory = 8 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts POST /api/upload.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Post("/", handler.uploadFile)
}

/*
POST /api/upload

Request: multipart/form-data with the image in the "file" field.
Response: 201 {"data": {"url": "/uploads/<name>", ...}}
*/
func (handler *Handler) uploadFile(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, handler.service.MaxBytes()+multipartOverhead)

	if err := request.ParseMultipartForm(maxMemory); err != nil {
		respond.Error(writer, request, handler.formError(err))
		return
	}
	defer func() {
		if request.MultipartForm != nil {
			_ = request.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("No file uploaded",
			apperr.FieldError{Field: FieldFile, Message: "This field is required"}))
		return
	}
	defer file.Close()

	if header.Size > handler.service.MaxBytes() {
		respond.Error(writer, request, tooLarge(handler.service.MaxBytes()))
		return
	}

	stored, err := handler.service.Store(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, stored)
}

func (handler *Handler) formError(err error) error {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return tooLarge(handler.service.MaxBytes())
	}
	return apperr.ValidationError("Expected a multipart/form-data body")
}
