// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package profile_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/internal/portfolio/profile"
	"github.com/dwikiramdani/kiramdashboard/pkg/pointer"
)

func newService(t *testing.T) *profile.Service {
	t.Helper()
	ctx := context.Background()

	backend := docstore.NewFileBackend(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, docstore.Provision(ctx, backend, &docstore.Document{
		Identity: docstore.IdentityRecord{ID: "1", Username: "kiram", PasswordHash: "aa:bb"},
		Profile: docstore.ProfileRecord{
			ProfilePicture: "/uploads/default-avatar.png",
			Headline:       "Full Stack Developer",
			Summary:        "Builds web applications.",
			Techstack:      []string{"Go", "Vue"},
		},
	}, false))

	store, err := docstore.Open(ctx, backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return profile.NewService(profile.NewDocumentRepository(store))
}

/*
TestUpdate_KeepsEmptyFields merges only non-empty values.
*/
func TestUpdate_KeepsEmptyFields(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	updated, err := service.Update(ctx, profile.UpdateInput{
		Headline: pointer.To("Backend Engineer"),
		Summary:  pointer.To(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", updated.Headline)
	assert.Equal(t, "Builds web applications.", updated.Summary)
	assert.Equal(t, "/uploads/default-avatar.png", updated.ProfilePicture)
	assert.Equal(t, []string{"Go", "Vue"}, updated.Techstack)
	assert.False(t, updated.UpdatedAt.IsZero())

	fetched, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

/*
TestUpdate_ReplacesTechstack treats any provided list, even empty, as a replacement.
*/
func TestUpdate_ReplacesTechstack(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	updated, err := service.Update(ctx, profile.UpdateInput{Techstack: []string{" Go ", "", "PostgreSQL"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, updated.Techstack)

	updated, err = service.Update(ctx, profile.UpdateInput{Techstack: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Techstack)
	assert.NotNil(t, updated.Techstack)
}

/*
TestUpdate_Validation rejects unsafe picture URLs without writing.
*/
func TestUpdate_Validation(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, profile.UpdateInput{ProfilePicture: pointer.To("javascript:alert(1)")})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	assert.Equal(t, profile.FieldProfilePicture, appError.Details[0].Field)

	fetched, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/default-avatar.png", fetched.ProfilePicture)
}
