// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package profile

import "context"

// Repository defines persistence for the profile.
type Repository interface {
	Get(context context.Context) (*Profile, error)

	// Update applies mutate to the stored profile and saves it atomically.
	Update(context context.Context, mutate func(profile *Profile) error) (*Profile, error)
}
