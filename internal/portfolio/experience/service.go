// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package experience

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
	"github.com/dwikiramdani/kiramdashboard/pkg/pointer"
	"github.com/dwikiramdani/kiramdashboard/pkg/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (service *Service) List(context context.Context) ([]*Experience, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id string) (*Experience, error) {
	return service.repo.Get(context, id)
}

// Create validates input and appends a new experience.
// A current position never carries an end date.
func (service *Service) Create(context context.Context, input CreateInput) (*Experience, error) {
	now := service.now().UTC()
	experience := &Experience{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		StartDate:   strings.TrimSpace(input.StartDate),
		EndDate:     normalizeEndDate(input.EndDate),
		Description: input.Description,
		Current:     input.Current,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if experience.Current {
		experience.EndDate = nil
	}

	if err := validateExperience(experience); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, experience); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "experience_created", slog.String("experience_id", experience.ID))
	return experience, nil
}

// Update merges input into the stored experience.
//
// Empty strings keep the stored value. Setting current to true clears the
// end date; a position that stays current ignores any end date sent.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Experience, error) {
	updated, err := service.repo.Update(context, id, func(experience *Experience) error {
		experience.Title = pointer.NonZero(trimmed(input.Title), experience.Title)
		experience.Company = pointer.NonZero(trimmed(input.Company), experience.Company)
		experience.StartDate = pointer.NonZero(trimmed(input.StartDate), experience.StartDate)
		experience.Description = pointer.NonZero(input.Description, experience.Description)
		experience.Current = pointer.Fallback(input.Current, experience.Current)

		if endDate := normalizeEndDate(input.EndDate); endDate != nil {
			experience.EndDate = endDate
		}
		if experience.Current {
			experience.EndDate = nil
		}

		experience.UpdatedAt = service.now().UTC()
		return validateExperience(experience)
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "experience_updated", slog.String("experience_id", id))
	return updated, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).WarnContext(context, "experience_deleted", slog.String("experience_id", id))
	return nil
}

func validateExperience(experience *Experience) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, experience.Title).
		MaxLen(FieldTitle, experience.Title, MaxTitleLength).
		Required(FieldCompany, experience.Company).
		MaxLen(FieldCompany, experience.Company, MaxCompanyLength).
		Required(FieldStartDate, experience.StartDate).
		MaxLen(FieldDescription, experience.Description, MaxDescriptionLength)

	if experience.StartDate != "" {
		validator.Date(FieldStartDate, experience.StartDate)
	}

	if experience.EndDate != nil {
		validator.Date(FieldEndDate, *experience.EndDate)
		validator.Custom(FieldEndDate,
			experience.StartDate != "" && dateKey(*experience.EndDate) < dateKey(experience.StartDate),
			"Must not be before startDate")
	}

	return validator.Err()
}

// normalizeEndDate maps blank end dates to nil.
func normalizeEndDate(endDate *string) *string {
	if endDate == nil || strings.TrimSpace(*endDate) == "" {
		return nil
	}
	return pointer.To(strings.TrimSpace(*endDate))
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	return pointer.To(strings.TrimSpace(*value))
}

// dateKey makes "2006-01" and "2006-01-02" values comparable as strings.
func dateKey(date string) string {
	if len(date) == len("2006-01") {
		return date + "-01"
	}
	return date
}
