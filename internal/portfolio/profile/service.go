// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
	"github.com/dwikiramdani/kiramdashboard/pkg/pointer"
	"github.com/dwikiramdani/kiramdashboard/pkg/slice"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (service *Service) Get(context context.Context) (*Profile, error) {
	return service.repo.Get(context)
}

// Update merges input into the stored profile.
func (service *Service) Update(context context.Context, input UpdateInput) (*Profile, error) {
	updated, err := service.repo.Update(context, func(profile *Profile) error {
		profile.ProfilePicture = pointer.NonZero(input.ProfilePicture, profile.ProfilePicture)
		profile.Headline = pointer.NonZero(input.Headline, profile.Headline)
		profile.Summary = pointer.NonZero(input.Summary, profile.Summary)

		if input.Techstack != nil {
			profile.Techstack = slice.Clean(slice.Map(input.Techstack, strings.TrimSpace))
		}

		profile.UpdatedAt = service.now().UTC()
		return validateProfile(profile)
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "profile_updated", slog.Int("techstack", len(updated.Techstack)))
	return updated, nil
}

func validateProfile(profile *Profile) error {
	validator := &validate.Validator{}

	validator.MaxLen(FieldHeadline, profile.Headline, MaxHeadlineLength).
		MaxLen(FieldSummary, profile.Summary, MaxSummaryLength).
		Custom(FieldTechstack, len(profile.Techstack) > MaxTechstackItems, "Too many entries")

	if profile.ProfilePicture != "" {
		validator.URL(FieldProfilePicture, profile.ProfilePicture)
	}

	for _, technology := range profile.Techstack {
		validator.MaxLen(FieldTechstack, technology, MaxTechstackLength)
	}

	return validator.Err()
}
