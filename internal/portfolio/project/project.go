// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package project manages the portfolio projects.
//
// Every project carries a slug derived from its title so public pages can use
// readable URLs; the id stays the stable reference for writes.
package project

import (
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
)

// DefaultImage is served for projects created without a picture.
const DefaultImage = constants.DefaultProjectImage

// Project is one portfolio entry.
type Project struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	Link         string    `json:"link"`
	Github       string    `json:"github"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateInput holds the fields accepted when adding a project.
type CreateInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	Github       string   `json:"github"`
}

// UpdateInput is a partial update.
//
// Title, Description and Image keep the current value when nil or empty.
// Link and Github replace it whenever present, so they can be cleared.
// A non-nil Technologies replaces the list.
type UpdateInput struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Technologies []string `json:"technologies"`
	Link         *string  `json:"link"`
	Github       *string  `json:"github"`
}

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldImage        = "image"
	FieldTechnologies = "technologies"
	FieldLink         = "link"
	FieldGithub       = "github"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxTechnologies      = 50
	MaxTechnologyLength  = 50
)
