package oracle

import (
	"context"
	"fmt"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// Service manages the reference price quotes and checks trade prices against
// them.
type Service struct {
	repoManager ports.RepoManager
	clock       ports.Clock
}

func NewService(
	repoManager ports.RepoManager, clock ports.Clock,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &Service{repoManager, clock}, nil
}

// Initialize sets the oracle admin. It can be called only once.
func (s *Service) Initialize(ctx context.Context, admin domain.Identity) error {
	if err := s.update(ctx, func(o *domain.PriceOracle) error {
		return o.Initialize(admin, s.now())
	}); err != nil {
		return err
	}

	log.Infof("price oracle initialized with admin %s", admin)
	return nil
}

// IsInitialized returns whether the oracle has an admin.
func (s *Service) IsInitialized(ctx context.Context) (bool, error) {
	oracle, err := s.GetOracle(ctx)
	if err != nil {
		return false, err
	}
	return oracle.IsInitialized, nil
}

func (s *Service) SetPriceProvider(
	ctx context.Context, admin, provider domain.Identity,
) error {
	if err := s.update(ctx, func(o *domain.PriceOracle) error {
		return o.SetPriceProvider(admin, provider, s.now())
	}); err != nil {
		return err
	}

	log.Debugf("price provider set to %s", provider)
	return nil
}

// UpdatePrices upserts the given quotes on behalf of the price provider.
func (s *Service) UpdatePrices(
	ctx context.Context, authority domain.Identity, quotes []domain.PriceQuote,
) error {
	if err := s.update(ctx, func(o *domain.PriceOracle) error {
		return o.UpdatePrices(authority, quotes, s.now())
	}); err != nil {
		return err
	}

	log.Debugf("updated %d price quotes", len(quotes))
	return nil
}

func (s *Service) RegisterPriceRoute(
	ctx context.Context, admin domain.Identity, denom string,
	routes []domain.PriceRoute,
) error {
	return s.update(ctx, func(o *domain.PriceOracle) error {
		return o.RegisterPriceRoute(admin, denom, routes, s.now())
	})
}

// Verify checks that price is within toleranceBps of the reference quote of
// currency.
func (s *Service) Verify(
	ctx context.Context, price uint64, currency string, toleranceBps uint32,
) error {
	oracle, err := s.GetOracle(ctx)
	if err != nil {
		return err
	}
	return oracle.Verify(price, currency, toleranceBps)
}

func (s *Service) GetPrice(
	ctx context.Context, currency string,
) (*domain.PriceQuote, error) {
	oracle, err := s.GetOracle(ctx)
	if err != nil {
		return nil, err
	}
	return oracle.GetPrice(currency)
}

func (s *Service) GetOracle(ctx context.Context) (*domain.PriceOracle, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.PriceOracleRepository().GetPriceOracle(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.PriceOracle), nil
}

func (s *Service) update(
	ctx context.Context, fn func(o *domain.PriceOracle) error,
) error {
	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.PriceOracleRepository().UpdatePriceOracle(
				ctx, func(o *domain.PriceOracle) (*domain.PriceOracle, error) {
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
