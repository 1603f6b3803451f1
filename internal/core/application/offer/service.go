package offer

import (
	"context"
	"fmt"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// TradeOpener creates the trade bound to a taken offer.
type TradeOpener interface {
	OpenTrade(
		ctx context.Context, maker, taker, tokenMint domain.Identity,
		amount, price uint64, offer domain.Address, depositor domain.Identity,
	) (*domain.Trade, error)
	PublishEvent(event ports.TradeEvent, trade domain.Trade)
}

// Service manages the makers' resting offers.
type Service struct {
	repoManager ports.RepoManager
	trades      TradeOpener
	clock       ports.Clock
}

func NewService(
	repoManager ports.RepoManager, trades TradeOpener, clock ports.Clock,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if trades == nil {
		return nil, fmt.Errorf("missing trade service")
	}
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &Service{repoManager, trades, clock}, nil
}

func (s *Service) CreateOffer(
	ctx context.Context, maker, tokenMint domain.Identity,
	pricePerToken, minAmount, maxAmount uint64, offerType domain.OfferType,
) (domain.Address, error) {
	offer, err := domain.NewOffer(
		maker, tokenMint, pricePerToken, minAmount, maxAmount, offerType,
		s.now(),
	)
	if err != nil {
		return domain.Address{}, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.OfferRepository().AddOffer(ctx, offer)
		},
	); err != nil {
		return domain.Address{}, err
	}

	log.Debugf("offer %s created", offer.Key)
	return offer.Key, nil
}

func (s *Service) UpdateOffer(
	ctx context.Context, key domain.Address, actor domain.Identity,
	update domain.OfferUpdate,
) error {
	return s.update(ctx, key, func(o *domain.Offer) error {
		return o.Update(actor, update, s.now())
	})
}

func (s *Service) PauseOffer(
	ctx context.Context, key domain.Address, actor domain.Identity,
) error {
	return s.update(ctx, key, func(o *domain.Offer) error {
		return o.Pause(actor, s.now())
	})
}

func (s *Service) ResumeOffer(
	ctx context.Context, key domain.Address, actor domain.Identity,
) error {
	return s.update(ctx, key, func(o *domain.Offer) error {
		return o.Resume(actor, s.now())
	})
}

func (s *Service) CloseOffer(
	ctx context.Context, key domain.Address, actor domain.Identity,
) error {
	if err := s.update(ctx, key, func(o *domain.Offer) error {
		return o.Close(actor, s.now())
	}); err != nil {
		return err
	}

	log.Debugf("offer %s closed", key)
	return nil
}

// TakeOffer opens a trade for amount at the offer's price. The offer stays
// Active and can be taken again.
func (s *Service) TakeOffer(
	ctx context.Context, key domain.Address, taker domain.Identity,
	amount uint64,
) (domain.Address, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			offer, err := s.repoManager.OfferRepository().GetOffer(ctx, key)
			if err != nil {
				return nil, err
			}
			if err := offer.CanBeTaken(taker, amount); err != nil {
				return nil, err
			}

			return s.trades.OpenTrade(
				ctx, offer.Maker, taker, offer.TokenMint, amount,
				offer.PricePerToken, offer.Key, offer.Depositor(taker),
			)
		},
	)
	if err != nil {
		return domain.Address{}, err
	}

	trade := res.(*domain.Trade)
	log.Debugf("offer %s taken by %s with trade %s", key, taker, trade.Key)
	s.trades.PublishEvent(ports.TradeCreated, *trade)
	return trade.Key, nil
}

func (s *Service) GetOffer(
	ctx context.Context, key domain.Address,
) (*domain.Offer, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.OfferRepository().GetOffer(ctx, key)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Offer), nil
}

// ListOffers returns the offers matching filter, oldest first.
func (s *Service) ListOffers(
	ctx context.Context, filter domain.OfferFilter,
) ([]*domain.Offer, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.OfferRepository().GetOffers(ctx, filter)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]*domain.Offer), nil
}

func (s *Service) GetOffersByMaker(
	ctx context.Context, maker domain.Identity,
) ([]*domain.Offer, error) {
	return s.ListOffers(ctx, domain.OfferFilter{Maker: &maker})
}

func (s *Service) update(
	ctx context.Context, key domain.Address, fn func(o *domain.Offer) error,
) error {
	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.OfferRepository().UpdateOffer(
				ctx, key, func(o *domain.Offer) (*domain.Offer, error) {
					if err := fn(o); err != nil {
						return nil, err
					}
					return o, nil
				},
			)
		},
	)
	return err
}

func (s *Service) now() int64 {
	return s.clock.Now().Unix()
}
