// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

/*
Package apperr holds the error type shared by the REST and GraphQL surfaces.

Services return an [*AppError] whenever the failure is something the caller
should see. Anything else is treated as an internal fault: its text is logged
and replaced by a generic message before it leaves the process.

The Code string is the stable contract. REST puts it in the error envelope and
GraphQL puts it in the error extensions.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
	CodePayloadTooBig   = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedMIME = "UNSUPPORTED_MEDIA_TYPE"
)

// AppError is a client-facing failure.
//
// Cause stays on the server. It is logged, never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one input field and what is wrong with it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("Project") reads "Project not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

// InvalidCredentials is the only answer a failed login ever gets.
func InvalidCredentials() *AppError {
	return Unauthorized("Invalid credentials")
}

// AuthenticationRequired rejects an anonymous write.
func AuthenticationRequired() *AppError {
	return Unauthorized("Authentication required")
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// ValidationError carries the failing fields in Details, in check order.
func ValidationError(message string, details ...FieldError) *AppError {
	appError := newError(http.StatusBadRequest, CodeValidation, message)
	appError.Details = details
	return appError
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

func PayloadTooLarge(message string) *AppError {
	return newError(http.StatusRequestEntityTooLarge, CodePayloadTooBig, message)
}

func UnsupportedMediaType(message string) *AppError {
	return newError(http.StatusUnsupportedMediaType, CodeUnsupportedMIME, message)
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

func ServiceUnavailable(message string) *AppError {
	return newError(http.StatusServiceUnavailable, CodeUnavailable, message)
}

// # Helpers

// As returns the first [*AppError] in the chain of err, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// From is [As] with a fallback: foreign errors become [Internal].
func From(err error) *AppError {
	if appError := As(err); appError != nil {
		return appError
	}
	return Internal(err)
}
