package dbbadger

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type offerRepositoryImpl struct {
	db txStore
}

func newOfferRepositoryImpl(db txStore) domain.OfferRepository {
	return offerRepositoryImpl{db}
}

func (r offerRepositoryImpl) AddOffer(
	ctx context.Context, offer *domain.Offer,
) error {
	return r.db.insert(ctx, offer.Key.String(), *offer)
}

func (r offerRepositoryImpl) GetOffer(
	ctx context.Context, key domain.Address,
) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.db.get(ctx, key.String(), &offer); err != nil {
		return nil, err
	}
	if err := checkOffer(offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetOffers scans the whole table and skips the records that can't be
// decoded.
func (r offerRepositoryImpl) GetOffers(
	ctx context.Context, filter domain.OfferFilter,
) ([]*domain.Offer, error) {
	res := make([]*domain.Offer, 0)
	if err := r.db.scan(
		ctx, domain.Offer{}, func(key string, value []byte) error {
			var offer domain.Offer
			err := r.db.decode(value, &offer)
			if err == nil {
				err = checkOffer(offer)
			}
			if err != nil {
				log.WithError(err).Warnf("skipping offer %s", key)
				return nil
			}
			if filter.Match(&offer) {
				res = append(res, &offer)
			}
			return nil
		},
	); err != nil {
		return nil, err
	}
	domain.SortOffers(res)
	return res, nil
}

func (r offerRepositoryImpl) UpdateOffer(
	ctx context.Context, key domain.Address,
	updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	offer, err := r.GetOffer(ctx, key)
	if err != nil {
		return err
	}

	updatedOffer, err := updateFn(offer)
	if err != nil {
		return err
	}

	return r.db.update(ctx, key.String(), *updatedOffer)
}

func checkOffer(offer domain.Offer) error {
	if !offer.Status.IsValid() || !offer.OfferType.IsValid() {
		return domain.NewCorruptRecordError(domain.ErrUnknownStatus)
	}
	return nil
}
