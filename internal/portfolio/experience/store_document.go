// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package experience

import (
	"context"
	"slices"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/dberr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/pkg/slice"
)

var errNotFound = apperr.NotFound("Experience")

// DocumentRepository implements [Repository] on the document store.
type DocumentRepository struct {
	store *docstore.Store
}

// NewDocumentRepository creates a repository over store.
func NewDocumentRepository(store *docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (repository *DocumentRepository) List(context context.Context) ([]*Experience, error) {
	var experiences []*Experience
	err := repository.store.Read(context, func(document *docstore.Document) error {
		experiences = slice.Map(document.Experiences, fromRecord)
		return nil
	})
	return experiences, dberr.Wrap(err, "experience.list")
}

func (repository *DocumentRepository) Get(context context.Context, id string) (*Experience, error) {
	var experience *Experience
	err := repository.store.Read(context, func(document *docstore.Document) error {
		index := indexOf(document, id)
		if index < 0 {
			return errNotFound
		}
		experience = fromRecord(document.Experiences[index])
		return nil
	})
	return experience, dberr.Wrap(err, "experience.get")
}

func (repository *DocumentRepository) Create(context context.Context, experience *Experience) error {
	err := repository.store.Update(context, func(document *docstore.Document) error {
		document.Experiences = append(document.Experiences, toRecord(experience))
		return nil
	})
	return dberr.Wrap(err, "experience.create")
}

func (repository *DocumentRepository) Update(context context.Context, id string, mutate func(*Experience) error) (*Experience, error) {
	var updated *Experience
	err := repository.store.Update(context, func(document *docstore.Document) error {
		index := indexOf(document, id)
		if index < 0 {
			return errNotFound
		}

		experience := fromRecord(document.Experiences[index])
		if err := mutate(experience); err != nil {
			return err
		}

		document.Experiences[index] = toRecord(experience)
		updated = experience
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "experience.update")
	}
	return updated, nil
}

func (repository *DocumentRepository) Delete(context context.Context, id string) error {
	err := repository.store.Update(context, func(document *docstore.Document) error {
		index := indexOf(document, id)
		if index < 0 {
			return errNotFound
		}
		document.Experiences = slices.Delete(document.Experiences, index, index+1)
		return nil
	})
	return dberr.Wrap(err, "experience.delete")
}

func indexOf(document *docstore.Document, id string) int {
	return slices.IndexFunc(document.Experiences, func(record docstore.ExperienceRecord) bool {
		return record.ID == id
	})
}

func fromRecord(record docstore.ExperienceRecord) *Experience {
	return &Experience{
		ID:          record.ID,
		Title:       record.Title,
		Company:     record.Company,
		StartDate:   record.StartDate,
		EndDate:     record.EndDate,
		Description: record.Description,
		Current:     record.Current,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func toRecord(experience *Experience) docstore.ExperienceRecord {
	return docstore.ExperienceRecord{
		ID:          experience.ID,
		Title:       experience.Title,
		Company:     experience.Company,
		StartDate:   experience.StartDate,
		EndDate:     experience.EndDate,
		Description: experience.Description,
		Current:     experience.Current,
		CreatedAt:   experience.CreatedAt,
		UpdatedAt:   experience.UpdatedAt,
	}
}
