// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package respond writes every REST response body.
//
// Three shapes leave the API:
//
//	{"data": ...}
//	{"data": [...], "meta": {"page", "limit", "total", "total_pages"}}
//	{"error": "...", "code": "...", "details": [...]}
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/pkg/pagination"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with the given status. Encoding errors are dropped
// because the status line has already been sent.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error writes err as the error envelope. 5xx causes are logged here and
// only the generic message reaches the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.From(err)

	if appError.HTTPStatus >= http.StatusInternalServerError {
		attrs := []any{slog.String("code", appError.Code)}
		if appError.Cause != nil {
			attrs = append(attrs, slog.String("cause", appError.Cause.Error()))
		}
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error", attrs...)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
