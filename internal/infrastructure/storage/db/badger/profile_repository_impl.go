package dbbadger

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type profileRepositoryImpl struct {
	db txStore
}

func newProfileRepositoryImpl(db txStore) domain.ProfileRepository {
	return profileRepositoryImpl{db}
}

func (r profileRepositoryImpl) AddProfile(
	ctx context.Context, profile *domain.Profile,
) error {
	return r.db.insert(ctx, profile.Key.String(), *profile)
}

func (r profileRepositoryImpl) GetProfile(
	ctx context.Context, key domain.Address,
) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.get(ctx, key.String(), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r profileRepositoryImpl) UpdateProfile(
	ctx context.Context, key domain.Address,
	updateFn func(p *domain.Profile) (*domain.Profile, error),
) error {
	profile, err := r.GetProfile(ctx, key)
	if err != nil {
		return err
	}

	updatedProfile, err := updateFn(profile)
	if err != nil {
		return err
	}

	return r.db.update(ctx, key.String(), *updatedProfile)
}
