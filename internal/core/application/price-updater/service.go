package priceupdater

import (
	"context"
	"fmt"
	"sync"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// PriceUpdater is the oracle operation used to push the reference quotes.
type PriceUpdater interface {
	UpdatePrices(
		ctx context.Context, authority domain.Identity, quotes []domain.PriceQuote,
	) error
}

// Service keeps the oracle quotes in sync with an external price feeder,
// acting as the oracle price provider. Oracle writes are throttled to the
// given rate per second.
type Service struct {
	priceFeeder ports.PriceFeeder
	oracle      PriceUpdater
	provider    domain.Identity
	markets     []ports.Market
	precision   int32
	limiter     ratelimit.Limiter
	wg          *sync.WaitGroup
}

func NewService(
	priceFeeder ports.PriceFeeder, oracle PriceUpdater,
	provider domain.Identity, markets []ports.Market,
	precision int32, ratePerSecond int,
) (*Service, error) {
	if priceFeeder == nil {
		return nil, fmt.Errorf("missing price feeder")
	}
	if oracle == nil {
		return nil, fmt.Errorf("missing price oracle")
	}
	if provider.IsZero() {
		return nil, fmt.Errorf("missing price provider identity")
	}
	if len(markets) <= 0 {
		return nil, fmt.Errorf("missing markets")
	}
	if precision < 0 {
		return nil, fmt.Errorf("precision must not be negative")
	}
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}

	return &Service{
		priceFeeder: priceFeeder,
		oracle:      oracle,
		provider:    provider,
		markets:     markets,
		precision:   precision,
		limiter:     ratelimit.New(ratePerSecond),
		wg:          &sync.WaitGroup{},
	}, nil
}

// Start subscribes the markets to the feeder and spawns the goroutines that
// run the feeder and forward its prices to the oracle.
func (s *Service) Start() error {
	if err := s.priceFeeder.SubscribeMarkets(s.markets); err != nil {
		return err
	}

	go func() {
		if err := s.priceFeeder.Start(); err != nil {
			log.WithError(err).Error("price feeder stopped unexpectedly")
		}
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Debug("reading price feed chan started")

		for priceFeed := range s.priceFeeder.FeedChan() {
			s.limiter.Take()
			if err := s.updatePrice(priceFeed); err != nil {
				log.WithError(err).Errorf(
					"cannot update %s price", priceFeed.GetMarket().Currency(),
				)
			}
		}

		log.Debug("reading price feed chan stopped")
	}()

	return nil
}

// Stop stops the feeder and waits for the pending update to complete.
func (s *Service) Stop() {
	s.priceFeeder.Stop()
	s.wg.Wait()
}

func (s *Service) updatePrice(priceFeed ports.PriceFeed) error {
	price, err := ScalePrice(priceFeed.GetPrice(), s.precision)
	if err != nil {
		return err
	}

	quote := domain.PriceQuote{
		Currency: priceFeed.GetMarket().Currency(),
		UsdPrice: price,
	}
	if err := s.oracle.UpdatePrices(
		context.Background(), s.provider, []domain.PriceQuote{quote},
	); err != nil {
		return err
	}

	log.Debugf("updated %s price to %d", quote.Currency, quote.UsdPrice)
	return nil
}

// ScalePrice converts a decimal price into the integer representation stored
// by the oracle, with precision decimal digits.
func ScalePrice(price decimal.Decimal, precision int32) (uint64, error) {
	scaled := price.Shift(precision).Round(0)
	if !scaled.IsPositive() {
		return 0, fmt.Errorf("price %s is too small for precision %d", price, precision)
	}
	if !scaled.BigInt().IsUint64() {
		return 0, fmt.Errorf("price %s overflows", price)
	}
	return scaled.BigInt().Uint64(), nil
}
