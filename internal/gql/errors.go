// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package gql

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
)

// resolverError carries an [apperr.AppError] into the GraphQL response.
// graphql-go copies Extensions into the "extensions" member of the error.
type resolverError struct {
	appError *apperr.AppError
}

func (e *resolverError) Error() string {
	return e.appError.Message
}

func (e *resolverError) Unwrap() error {
	return e.appError
}

// Extensions exposes the machine-readable code and any field details.
func (e *resolverError) Extensions() map[string]any {
	extensions := map[string]any{"code": e.appError.Code}
	if len(e.appError.Details) > 0 {
		extensions["details"] = e.appError.Details
	}
	return extensions
}

func toGraphQLError(ctx context.Context, err error) error {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "graphql_resolver_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	return &resolverError{appError: appError}
}
