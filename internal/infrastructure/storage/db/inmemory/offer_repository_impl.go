package inmemory

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type offerRepositoryImpl struct {
	store *store
}

// NewOfferRepositoryImpl returns a new inmemory OfferRepository implementation.
func NewOfferRepositoryImpl(store *store) domain.OfferRepository {
	return &offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddOffer(
	ctx context.Context, offer *domain.Offer,
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		if _, ok := t.offers[offer.Key]; ok {
			return domain.ErrDuplicateAddress
		}
		t.offers[offer.Key] = *offer
		return nil
	})
}

func (r offerRepositoryImpl) GetOffer(
	ctx context.Context, key domain.Address,
) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.store.with(ctx, true, func(t *tables) error {
		o, ok := t.offers[key]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkOffer(o); err != nil {
			return err
		}
		offer = o
		return nil
	}); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r offerRepositoryImpl) GetOffers(
	ctx context.Context, filter domain.OfferFilter,
) ([]*domain.Offer, error) {
	offers := make([]*domain.Offer, 0)
	if err := r.store.with(ctx, true, func(t *tables) error {
		for key, o := range t.offers {
			offer := o
			if err := checkOffer(offer); err != nil {
				log.WithError(err).Warnf("skipping offer %s", key)
				continue
			}
			if filter.Match(&offer) {
				offers = append(offers, &offer)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	domain.SortOffers(offers)
	return offers, nil
}

func (r offerRepositoryImpl) UpdateOffer(
	ctx context.Context, key domain.Address,
	updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		o, ok := t.offers[key]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkOffer(o); err != nil {
			return err
		}
		updatedOffer, err := updateFn(&o)
		if err != nil {
			return err
		}
		t.offers[key] = *updatedOffer
		return nil
	})
}

func checkOffer(offer domain.Offer) error {
	if !offer.Status.IsValid() || !offer.OfferType.IsValid() {
		return domain.NewCorruptRecordError(domain.ErrUnknownStatus)
	}
	return nil
}
