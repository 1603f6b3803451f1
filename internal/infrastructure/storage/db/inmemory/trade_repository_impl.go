package inmemory

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type tradeRepositoryImpl struct {
	store *store
}

// NewTradeRepositoryImpl returns a new inmemory TradeRepository implementation.
func NewTradeRepositoryImpl(store *store) domain.TradeRepository {
	return &tradeRepositoryImpl{store}
}

func (r tradeRepositoryImpl) AddTrade(
	ctx context.Context, trade *domain.Trade,
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		if _, ok := t.trades[trade.Key]; ok {
			return domain.ErrDuplicateAddress
		}
		t.trades[trade.Key] = *trade
		return nil
	})
}

func (r tradeRepositoryImpl) GetTrade(
	ctx context.Context, key domain.Address,
) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.store.with(ctx, true, func(t *tables) error {
		tr, ok := t.trades[key]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkTrade(tr); err != nil {
			return err
		}
		trade = tr
		return nil
	}); err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r tradeRepositoryImpl) GetAllTrades(
	ctx context.Context,
) ([]*domain.Trade, error) {
	return r.findTrades(ctx, func(*domain.Trade) bool { return true })
}

func (r tradeRepositoryImpl) GetTradesByParty(
	ctx context.Context, party domain.Identity,
) ([]*domain.Trade, error) {
	return r.findTrades(ctx, func(t *domain.Trade) bool {
		return t.IsParty(party)
	})
}

func (r tradeRepositoryImpl) UpdateTrade(
	ctx context.Context, key domain.Address,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		tr, ok := t.trades[key]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkTrade(tr); err != nil {
			return err
		}
		updatedTrade, err := updateFn(&tr)
		if err != nil {
			return err
		}
		t.trades[key] = *updatedTrade
		return nil
	})
}

func (r tradeRepositoryImpl) findTrades(
	ctx context.Context, match func(*domain.Trade) bool,
) ([]*domain.Trade, error) {
	trades := make([]*domain.Trade, 0)
	if err := r.store.with(ctx, true, func(t *tables) error {
		for key, tr := range t.trades {
			trade := tr
			if err := checkTrade(trade); err != nil {
				log.WithError(err).Warnf("skipping trade %s", key)
				continue
			}
			if match(&trade) {
				trades = append(trades, &trade)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	domain.SortTrades(trades)
	return trades, nil
}

func checkTrade(trade domain.Trade) error {
	if !trade.Status.IsValid() {
		return domain.NewCorruptRecordError(domain.ErrUnknownStatus)
	}
	return nil
}
