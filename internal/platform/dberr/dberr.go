// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package dberr bridges document store errors and application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
)

// Wrap classifies a store error for the API layer.
//
// Application errors raised inside an update callback (not found, validation)
// pass through unchanged. Everything else is hidden behind a 500 or 503, with
// action recorded on the cause for the logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if appError := apperr.As(err); appError != nil {
		return appError
	}

	switch {
	case errors.Is(err, docstore.ErrNotProvisioned):
		appError := apperr.ServiceUnavailable("Content store is not provisioned")
		appError.Cause = fmt.Errorf("%s: %w", action, err)
		return appError
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		appError := apperr.ServiceUnavailable("Request timed out")
		appError.Cause = fmt.Errorf("%s: %w", action, err)
		return appError
	default:
		return apperr.Internal(fmt.Errorf("%s: %w", action, err))
	}
}
