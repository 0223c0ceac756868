// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package docstore persists the whole dashboard state as one JSON document.
//
// # Architecture
//
// The dataset is tiny (one identity, one profile, two short collections), so
// it is loaded once, kept in memory and written back in full after every
// mutation. A [Backend] decides where the bytes live: a local file or a
// single Postgres jsonb row.
//
// Domain packages never touch [Document] directly from handlers; their
// store_document.go adapters map records to entities inside [Store.Read] and
// [Store.Update].
package docstore

import (
	"slices"
	"time"
)

// # Records

// IdentityRecord is the single administrative account.
type IdentityRecord struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`

	// APIKeyDigest is the SHA-256 hex digest of the active key; empty when none.
	APIKeyDigest   string     `json:"apiKeyDigest,omitempty"`
	APIKeyIssuedAt *time.Time `json:"apiKeyIssuedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ProfileRecord is the public profile card.
type ProfileRecord struct {
	ProfilePicture string    `json:"profilePicture"`
	Headline       string    `json:"headline"`
	Summary        string    `json:"summary"`
	Techstack      []string  `json:"techstack"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ExperienceRecord is one entry of the work history.
type ExperienceRecord struct {
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

// ProjectRecord is one portfolio project.
type ProjectRecord struct {
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

// # Document

// Document is the persisted root.
type Document struct {
	Identity    IdentityRecord     `json:"identity"`
	Profile     ProfileRecord      `json:"profile"`
	Experiences []ExperienceRecord `json:"experiences"`
	Projects    []ProjectRecord    `json:"projects"`
}

// Provisioned reports whether the document carries a usable identity.
func (d *Document) Provisioned() bool {
	return d != nil && d.Identity.ID != "" && d.Identity.Username != "" && d.Identity.PasswordHash != ""
}

// Clone returns a deep copy; mutating the copy never affects d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	clone := &Document{
		Identity: d.Identity,
		Profile:  d.Profile,
	}

	if d.Identity.APIKeyIssuedAt != nil {
		issuedAt := *d.Identity.APIKeyIssuedAt
		clone.Identity.APIKeyIssuedAt = &issuedAt
	}
	clone.Profile.Techstack = slices.Clone(d.Profile.Techstack)

	clone.Experiences = make([]ExperienceRecord, len(d.Experiences))
	for i, experience := range d.Experiences {
		if experience.EndDate != nil {
			endDate := *experience.EndDate
			experience.EndDate = &endDate
		}
		clone.Experiences[i] = experience
	}

	clone.Projects = make([]ProjectRecord, len(d.Projects))
	for i, project := range d.Projects {
		project.Technologies = slices.Clone(project.Technologies)
		clone.Projects[i] = project
	}

	return clone
}

// normalize replaces nil collections so they encode as [] rather than null.
func (d *Document) normalize() {
	if d.Experiences == nil {
		d.Experiences = []ExperienceRecord{}
	}
	if d.Projects == nil {
		d.Projects = []ProjectRecord{}
	}
	if d.Profile.Techstack == nil {
		d.Profile.Techstack = []string{}
	}
	for i := range d.Projects {
		if d.Projects[i].Technologies == nil {
			d.Projects[i].Technologies = []string{}
		}
	}
}
