// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package project

import (
	"context"
	"slices"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/dberr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/pkg/slice"
)

var errNotFound = apperr.NotFound("Project")

// DocumentRepository implements [Repository] on the document store.
type DocumentRepository struct {
	store *docstore.Store
}

func NewDocumentRepository(store *docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (repository *DocumentRepository) List(context context.Context) ([]*Project, error) {
	var projects []*Project
	err := repository.store.Read(context, func(document *docstore.Document) error {
		projects = slice.Map(document.Projects, fromRecord)
		return nil
	})
	return projects, dberr.Wrap(err, "project.list")
}

func (repository *DocumentRepository) Get(context context.Context, idOrSlug string) (*Project, error) {
	var project *Project
	err := repository.store.Read(context, func(document *docstore.Document) error {
		index := indexOf(document, idOrSlug)
		if index < 0 {
			index = slices.IndexFunc(document.Projects, func(record docstore.ProjectRecord) bool {
				return record.Slug == idOrSlug
			})
		}
		if index < 0 {
			return errNotFound
		}
		project = fromRecord(document.Projects[index])
		return nil
	})
	return project, dberr.Wrap(err, "project.get")
}

func (repository *DocumentRepository) Create(context context.Context, build func(taken func(string) bool) (*Project, error)) (*Project, error) {
	var created *Project
	err := repository.store.Update(context, func(document *docstore.Document) error {
		project, err := build(slugTaken(document, ""))
		if err != nil {
			return err
		}
		document.Projects = append(document.Projects, toRecord(project))
		created = project
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "project.create")
	}
	return created, nil
}

func (repository *DocumentRepository) Update(context context.Context, id string, mutate func(*Project, func(string) bool) error) (*Project, error) {
	var updated *Project
	err := repository.store.Update(context, func(document *docstore.Document) error {
		index := indexOf(document, id)
		if index < 0 {
			return errNotFound
		}

		project := fromRecord(document.Projects[index])
		if err := mutate(project, slugTaken(document, id)); err != nil {
			return err
		}

		document.Projects[index] = toRecord(project)
		updated = project
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "project.update")
	}
	return updated, nil
}

func (repository *DocumentRepository) Delete(context context.Context, id string) error {
	err := repository.store.Update(context, func(document *docstore.Document) error {
		index := indexOf(document, id)
		if index < 0 {
			return errNotFound
		}
		document.Projects = slices.Delete(document.Projects, index, index+1)
		return nil
	})
	return dberr.Wrap(err, "project.delete")
}

func indexOf(document *docstore.Document, id string) int {
	return slices.IndexFunc(document.Projects, func(record docstore.ProjectRecord) bool {
		return record.ID == id
	})
}

// slugTaken reports slugs used by projects other than exceptID.
func slugTaken(document *docstore.Document, exceptID string) func(string) bool {
	return func(candidate string) bool {
		return slices.ContainsFunc(document.Projects, func(record docstore.ProjectRecord) bool {
			return record.ID != exceptID && record.Slug == candidate
		})
	}
}

func fromRecord(record docstore.ProjectRecord) *Project {
	technologies := slices.Clone(record.Technologies)
	if technologies == nil {
		technologies = []string{}
	}

	return &Project{
		ID:           record.ID,
		Slug:         record.Slug,
		Title:        record.Title,
		Description:  record.Description,
		Image:        record.Image,
		Technologies: technologies,
		Link:         record.Link,
		Github:       record.Github,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toRecord(project *Project) docstore.ProjectRecord {
	return docstore.ProjectRecord{
		ID:           project.ID,
		Slug:         project.Slug,
		Title:        project.Title,
		Description:  project.Description,
		Image:        project.Image,
		Technologies: project.Technologies,
		Link:         project.Link,
		Github:       project.Github,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}
}
