package inmemory

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type profileRepositoryImpl struct {
	store *store
}

func NewProfileRepositoryImpl(store *store) domain.ProfileRepository {
	return &profileRepositoryImpl{store}
}

func (r profileRepositoryImpl) AddProfile(
	ctx context.Context, profile *domain.Profile,
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		if _, ok := t.profiles[profile.Key]; ok {
			return domain.ErrDuplicateAddress
		}
		t.profiles[profile.Key] = *profile
		return nil
	})
}

func (r profileRepositoryImpl) GetProfile(
	ctx context.Context, key domain.Address,
) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.store.with(ctx, true, func(t *tables) error {
		p, ok := t.profiles[key]
		if !ok {
			return domain.ErrNotFound
		}
		profile = p
		return nil
	}); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r profileRepositoryImpl) UpdateProfile(
	ctx context.Context, key domain.Address,
	updateFn func(p *domain.Profile) (*domain.Profile, error),
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		p, ok := t.profiles[key]
		if !ok {
			return domain.ErrNotFound
		}
		updatedProfile, err := updateFn(&p)
		if err != nil {
			return err
		}
		t.profiles[key] = *updatedProfile
		return nil
	})
}
