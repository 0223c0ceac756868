// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package profile

import (
	"context"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/dberr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
)

// DocumentRepository implements [Repository] on the document store.
type DocumentRepository struct {
	store *docstore.Store
}

func NewDocumentRepository(store *docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (repository *DocumentRepository) Get(context context.Context) (*Profile, error) {
	var profile *Profile
	err := repository.store.Read(context, func(document *docstore.Document) error {
		profile = fromRecord(document.Profile)
		return nil
	})
	return profile, dberr.Wrap(err, "profile.get")
}

func (repository *DocumentRepository) Update(context context.Context, mutate func(*Profile) error) (*Profile, error) {
	var updated *Profile
	err := repository.store.Update(context, func(document *docstore.Document) error {
		profile := fromRecord(document.Profile)
		if err := mutate(profile); err != nil {
			return err
		}
		document.Profile = toRecord(profile)
		updated = profile
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "profile.update")
	}
	return updated, nil
}

func fromRecord(record docstore.ProfileRecord) *Profile {
	techstack := record.Techstack
	if techstack == nil {
		techstack = []string{}
	}
	return &Profile{
		ProfilePicture: record.ProfilePicture,
		Headline:       record.Headline,
		Summary:        record.Summary,
		Techstack:      techstack,
		UpdatedAt:      record.UpdatedAt,
	}
}

func toRecord(profile *Profile) docstore.ProfileRecord {
	return docstore.ProfileRecord{
		ProfilePicture: profile.ProfilePicture,
		Headline:       profile.Headline,
		Summary:        profile.Summary,
		Techstack:      profile.Techstack,
		UpdatedAt:      profile.UpdatedAt,
	}
}
