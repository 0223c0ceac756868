// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package profile manages the public profile card: picture, headline,
// summary and tech stack.
package profile

import "time"

// Profile is the single profile record.
type Profile struct {
	ProfilePicture string    `json:"profilePicture"`
	Headline       string    `json:"headline"`
	Summary        string    `json:"summary"`
	Techstack      []string  `json:"techstack"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpdateInput is a partial update. Nil or empty strings keep the current
// value; a non-nil Techstack (even empty) replaces the list.
type UpdateInput struct {
	ProfilePicture *string  `json:"profilePicture"`
	Headline       *string  `json:"headline"`
	Summary        *string  `json:"summary"`
	Techstack      []string `json:"techstack"`
}

const (
	FieldProfilePicture = "profilePicture"
	FieldHeadline       = "headline"
	FieldSummary        = "summary"
	FieldTechstack      = "techstack"
)

const (
	MaxHeadlineLength  = 200
	MaxSummaryLength   = 5000
	MaxTechstackItems  = 50
	MaxTechstackLength = 50
)
