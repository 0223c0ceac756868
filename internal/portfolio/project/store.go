// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package project

import "context"

// Repository defines persistence for projects.
//
// Create and Update receive the set of slugs held by other projects so the
// slug can be made unique inside the same write.
type Repository interface {
	List(context context.Context) ([]*Project, error)

	// Get finds a project by id, then by slug.
	Get(context context.Context, idOrSlug string) (*Project, error)

	Create(context context.Context, build func(taken func(slug string) bool) (*Project, error)) (*Project, error)
	Update(context context.Context, id string, mutate func(project *Project, taken func(slug string) bool) error) (*Project, error)
	Delete(context context.Context, id string) error
}
