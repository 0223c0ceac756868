// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package experience manages the work history shown on the portfolio.
package experience

import "time"

// Experience is one position in the work history.
type Experience struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	StartDate   string    `json:"startDate"`
	EndDate     *string   `json:"endDate"`
	Description string    `json:"description"`
	Current     bool      `json:"current"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput holds the fields accepted when adding an experience.
type CreateInput struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
	Current     bool    `json:"current"`
}

// UpdateInput is a partial update. Nil or empty strings keep the current
// value; Current, when set, replaces it.
type UpdateInput struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description"`
	Current     *bool   `json:"current"`
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldCompany     = "company"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldDescription = "description"
)

// Length limits
const (
	MaxTitleLength       = 200
	MaxCompanyLength     = 200
	MaxDescriptionLength = 5000
)
