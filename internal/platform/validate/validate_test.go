// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
)

/*
TestValidator_Required rejects empty and blank values.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Backend Engineer", false},
		{"empty_string", "company", "", true},
		{"whitespace_only", "startDate", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, apperr.CodeValidation, appError.Code)
				assert.Equal(t, tt.field, appError.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain passes when every chained rule holds.
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "kiram").
		MinLen("username", "kiram", 3).
		MaxLen("username", "kiram", 10).
		URL("link", "https://kiram.dev").
		Date("startDate", "2024-05").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure keeps one detail per failed rule, in order.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").
		MinLen("username", "a", 5).
		Custom("endDate", true, "Before start").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	require.Len(t, ae.Details, 3)
	assert.Equal(t, "username", ae.Details[0].Field)
	assert.Equal(t, "Minimum 5 characters", ae.Details[1].Message)
	assert.Equal(t, "Before start", ae.Details[2].Message)
}

/*
TestValidator_URL accepts absolute http(s) URLs and site paths only.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://github.com/kiram/folio", true},
		{"http", "http://example.com", true},
		{"site_path", "/uploads/1700000000-avatar.png", true},
		{"protocol_relative", "//evil.example/x.png", false},
		{"javascript", "javascript:alert(1)", false},
		{"no_host", "https://", false},
		{"plain_text", "my project", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("link", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Date accepts full dates and year-month values.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"full_date", "2024-03-15", true},
		{"year_month", "2024-03", true},
		{"bad_month", "2024-13", false},
		{"free_text", "March 2024", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("startDate", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}
