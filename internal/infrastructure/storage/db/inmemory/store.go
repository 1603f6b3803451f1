package inmemory

import (
	"context"
	"sync"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type txKey struct{}

type tables struct {
	offers   map[domain.Address]domain.Offer
	trades   map[domain.Address]domain.Trade
	profiles map[domain.Address]domain.Profile
	balances map[domain.Address]domain.Balance
	oracle   *domain.PriceOracle
}

func newTables() *tables {
	return &tables{
		offers:   make(map[domain.Address]domain.Offer),
		trades:   make(map[domain.Address]domain.Trade),
		profiles: make(map[domain.Address]domain.Profile),
		balances: make(map[domain.Address]domain.Balance),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.offers {
		c.offers[k] = v
	}
	for k, v := range t.trades {
		c.trades[k] = v
	}
	for k, v := range t.profiles {
		c.profiles[k] = v
	}
	for k, v := range t.balances {
		c.balances[k] = v
	}
	if t.oracle != nil {
		c.oracle = cloneOracle(*t.oracle)
	}
	return c
}

// store serializes writers with a store-wide lock. A write transaction works
// on a staged copy of the tables that replaces the live ones only if the
// handler succeeds.
type store struct {
	locker *sync.RWMutex
	tables *tables
}

func newStore() *store {
	return &store{
		locker: &sync.RWMutex{},
		tables: newTables(),
	}
}

func (s *store) run(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if _, ok := ctx.Value(txKey{}).(*tables); ok {
		return handler(ctx)
	}

	if readOnly {
		s.locker.RLock()
		defer s.locker.RUnlock()

		return handler(context.WithValue(ctx, txKey{}, s.tables))
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	staged := s.tables.clone()
	res, err := handler(context.WithValue(ctx, txKey{}, staged))
	if err != nil {
		return nil, err
	}
	s.tables = staged
	return res, nil
}

// with runs fn against the tables of the transaction carried by ctx, or in a
// dedicated one otherwise.
func (s *store) with(
	ctx context.Context, readOnly bool, fn func(t *tables) error,
) error {
	_, err := s.run(ctx, readOnly, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx.Value(txKey{}).(*tables))
	})
	return err
}

func cloneOracle(o domain.PriceOracle) *domain.PriceOracle {
	c := o
	c.Quotes = make(map[string]domain.PriceQuote, len(o.Quotes))
	for k, v := range o.Quotes {
		c.Quotes[k] = v
	}
	c.Routes = make(map[string][]domain.PriceRoute, len(o.Routes))
	for k, v := range o.Routes {
		c.Routes[k] = append([]domain.PriceRoute{}, v...)
	}
	return &c
}
