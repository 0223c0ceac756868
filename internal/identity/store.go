// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package identity

import (
	"context"
	"time"
)

// Repository defines the data access contract for the identity record.
type Repository interface {

	/*
		Get returns the provisioned identity.

		Returns:
		  - *Identity: including the password hash and API key digest
		  - error: store failures
	*/
	Get(context context.Context) (*Identity, error)

	/*
		ReplaceAPIKey swaps the stored API key digest for identity id.

		The previous key stops matching as soon as this returns.

		Returns:
		  - error: apperr.NotFound when id is not the provisioned identity
	*/
	ReplaceAPIKey(context context.Context, id, digest string, issuedAt time.Time) error
}
