// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"context"
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/dberr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
)

// DocumentRepository implements [Repository] on the document store.
type DocumentRepository struct {
	store *docstore.Store
}

// NewDocumentRepository creates a repository over store.
func NewDocumentRepository(store *docstore.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

// Get implements [Repository].
func (repository *DocumentRepository) Get(context context.Context) (*Identity, error) {
	var identity *Identity
	err := repository.store.Read(context, func(document *docstore.Document) error {
		identity = fromRecord(document.Identity)
		return nil
	})
	if err != nil {
		return nil, dberr.Wrap(err, "identity.get")
	}
	return identity, nil
}

// ReplaceAPIKey implements [Repository].
func (repository *DocumentRepository) ReplaceAPIKey(context context.Context, id, digest string, issuedAt time.Time) error {
	err := repository.store.Update(context, func(document *docstore.Document) error {
		// Credentials minted for a previous provisioning are stale.
		if document.Identity.ID != id {
			return apperr.AuthenticationRequired()
		}
		document.Identity.APIKeyDigest = digest
		document.Identity.APIKeyIssuedAt = &issuedAt
		return nil
	})
	return dberr.Wrap(err, "identity.replace_api_key")
}

func fromRecord(record docstore.IdentityRecord) *Identity {
	return &Identity{
		ID:             record.ID,
		Username:       record.Username,
		Role:           sec.RoleAdmin,
		HasAPIKey:      record.APIKeyDigest != "",
		APIKeyIssuedAt: record.APIKeyIssuedAt,
		CreatedAt:      record.CreatedAt,
		PasswordHash:   record.PasswordHash,
		APIKeyDigest:   record.APIKeyDigest,
	}
}
