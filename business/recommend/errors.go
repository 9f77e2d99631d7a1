package recommend

import "errors"

var (
	// ErrMissingProfileData means the requester has not filled in age,
	// assets and annual income.
	ErrMissingProfileData = errors.New("missing profile data: age, assets and annual income are required")

	ErrUnexpectedFailure = errors.New("failed to generate recommendations")
)
