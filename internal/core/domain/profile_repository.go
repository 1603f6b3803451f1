package domain

import "context"

type ProfileRepository interface {
	// AddProfile stores a new profile, failing with ErrDuplicateAddress if the
	// owner already has one.
	AddProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, key Address) (*Profile, error)
	UpdateProfile(
		ctx context.Context, key Address,
		updateFn func(p *Profile) (*Profile, error),
	) error
}
