// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package validate collects field errors for a single input and turns them
// into one VALIDATION_ERROR [apperr.AppError].
//
// Handlers only check request shape (credentials present); services run the
// content rules before a mutation reaches the document store.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body is not valid JSON.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// monthLayout is the year-month form used by experience dates.
const monthLayout = "2006-01"

// Validator accumulates failures. Each rule returns the receiver so rules can
// be chained; call [Validator.Err] once at the end. Use one per input.
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, strings.TrimSpace(value) != "", "This field is required")
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) <= max, fmt.Sprintf("Maximum %d characters", max))
}

// MinLen counts runes, not bytes.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) >= min, fmt.Sprintf("Minimum %d characters", min))
}

// URL accepts absolute http(s) URLs and site paths such as "/uploads/a.png".
// Protocol-relative values ("//host/x") are rejected.
func (v *Validator) URL(field, value string) *Validator {
	return v.check(field, isSitePath(value) || isWebURL(value), "Must be a valid http(s) URL or site path")
}

// Date accepts YYYY-MM-DD and YYYY-MM.
func (v *Validator) Date(field, value string) *Validator {
	return v.check(field, parses(time.DateOnly, value) || parses(monthLayout, value),
		"Must be a date in YYYY-MM-DD or YYYY-MM format")
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(field, !failed, message)
}

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) check(field string, ok bool, message string) *Validator {
	if !ok {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

func isSitePath(value string) bool {
	return strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//")
}

func isWebURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func parses(layout, value string) bool {
	_, err := time.Parse(layout, value)
	return err == nil
}
