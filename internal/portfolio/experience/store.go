// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package experience

import "context"

// Repository defines persistence for experiences.
type Repository interface {
	List(context context.Context) ([]*Experience, error)

	// Get returns apperr.NotFound when id is unknown.
	Get(context context.Context, id string) (*Experience, error)

	Create(context context.Context, experience *Experience) error

	// Update loads the experience, applies mutate and saves the result in
	// one step. An error from mutate aborts the write.
	Update(context context.Context, id string, mutate func(experience *Experience) error) (*Experience, error)

	// Delete returns apperr.NotFound when id is unknown.
	Delete(context context.Context, id string) error
}
