// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package project

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
	"github.com/dwikiramdani/kiramdashboard/pkg/pointer"
	"github.com/dwikiramdani/kiramdashboard/pkg/slice"
	"github.com/dwikiramdani/kiramdashboard/pkg/slug"
	"github.com/dwikiramdani/kiramdashboard/pkg/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (service *Service) List(context context.Context) ([]*Project, error) {
	return service.repo.List(context)
}

// Get resolves a project by id or slug.
func (service *Service) Get(context context.Context, idOrSlug string) (*Project, error) {
	return service.repo.Get(context, idOrSlug)
}

// Create validates input, fills defaults and appends a new project.
func (service *Service) Create(context context.Context, input CreateInput) (*Project, error) {
	now := service.now().UTC()
	project := &Project{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Image:        strings.TrimSpace(input.Image),
		Technologies: cleanTechnologies(input.Technologies),
		Link:         strings.TrimSpace(input.Link),
		Github:       strings.TrimSpace(input.Github),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if project.Image == "" {
		project.Image = DefaultImage
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, func(taken func(string) bool) (*Project, error) {
		project.Slug = slug.Unique(project.Title, taken)
		return project, nil
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "project_created",
		slog.String("project_id", created.ID),
		slog.String("slug", created.Slug),
	)
	return created, nil
}

// Update merges input into the stored project. A changed title yields a new slug.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Project, error) {
	updated, err := service.repo.Update(context, id, func(project *Project, taken func(string) bool) error {
		previousTitle := project.Title

		project.Title = pointer.NonZero(trimmed(input.Title), project.Title)
		project.Description = pointer.NonZero(input.Description, project.Description)
		project.Image = pointer.NonZero(trimmed(input.Image), project.Image)

		if input.Technologies != nil {
			project.Technologies = cleanTechnologies(input.Technologies)
		}
		if input.Link != nil {
			project.Link = strings.TrimSpace(*input.Link)
		}
		if input.Github != nil {
			project.Github = strings.TrimSpace(*input.Github)
		}

		if project.Title != previousTitle || project.Slug == "" {
			project.Slug = slug.Unique(project.Title, taken)
		}

		project.UpdatedAt = service.now().UTC()
		return validateProject(project)
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "project_updated", slog.String("project_id", id))
	return updated, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).WarnContext(context, "project_deleted", slog.String("project_id", id))
	return nil
}

func validateProject(project *Project) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, project.Title).
		MaxLen(FieldTitle, project.Title, MaxTitleLength).
		Required(FieldDescription, project.Description).
		MaxLen(FieldDescription, project.Description, MaxDescriptionLength).
		URL(FieldImage, project.Image).
		Custom(FieldTechnologies, len(project.Technologies) > MaxTechnologies, "Too many entries")

	for _, technology := range project.Technologies {
		validator.MaxLen(FieldTechnologies, technology, MaxTechnologyLength)
	}

	if project.Link != "" {
		validator.URL(FieldLink, project.Link)
	}
	if project.Github != "" {
		validator.URL(FieldGithub, project.Github)
	}

	return validator.Err()
}

func cleanTechnologies(technologies []string) []string {
	return slice.Clean(slice.Map(technologies, strings.TrimSpace))
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	return pointer.To(strings.TrimSpace(*value))
}
