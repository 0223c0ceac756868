// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

/*
Package request provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and the JSON body decoding rules
behind a few helpers so every handler fails the same way.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
)

// MaxJSONBodyBytes caps JSON request bodies.
const MaxJSONBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

An empty body decodes to the zero value so that partial updates with no
fields behave like an empty object.

Returns:
  - error: validate.ErrInvalidJSON for malformed input, apperr.PayloadTooLarge
    when the body exceeds [MaxJSONBodyBytes]
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	if request.Body == nil {
		return nil
	}

	body := http.MaxBytesReader(writer, request.Body, MaxJSONBodyBytes)
	decoder := json.NewDecoder(body)

	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperr.PayloadTooLarge("Request body too large")
		case errors.Is(err, io.EOF):
			return nil
		default:
			return validate.ErrInvalidJSON
		}
	}
	return nil
}

/*
ID retrieves a named URL parameter (id or slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
Principal returns the identity attached by the authentication middleware.

Returns nil if the request is anonymous.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated.

Returns:
  - *sec.Principal: The resolved identity
  - error: apperr.AuthenticationRequired when the request is anonymous
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.AuthenticationRequired()
	}
	return principal, nil
}
