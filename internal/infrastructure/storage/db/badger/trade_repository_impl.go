package dbbadger

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type tradeRepositoryImpl struct {
	db txStore
}

func newTradeRepositoryImpl(db txStore) domain.TradeRepository {
	return tradeRepositoryImpl{db}
}

func (r tradeRepositoryImpl) AddTrade(
	ctx context.Context, trade *domain.Trade,
) error {
	return r.db.insert(ctx, trade.Key.String(), *trade)
}

func (r tradeRepositoryImpl) GetTrade(
	ctx context.Context, key domain.Address,
) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.db.get(ctx, key.String(), &trade); err != nil {
		return nil, err
	}
	if !trade.Status.IsValid() {
		return nil, domain.NewCorruptRecordError(domain.ErrUnknownStatus)
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
	trade, err := r.GetTrade(ctx, key)
	if err != nil {
		return err
	}

	updatedTrade, err := updateFn(trade)
	if err != nil {
		return err
	}

	return r.db.update(ctx, key.String(), *updatedTrade)
}

// findTrades scans the whole table. Maker and taker are byte arrays that
// badgerhold can't index, so filtering happens here. Records that can't be
// decoded are skipped.
func (r tradeRepositoryImpl) findTrades(
	ctx context.Context, match func(*domain.Trade) bool,
) ([]*domain.Trade, error) {
	res := make([]*domain.Trade, 0)
	if err := r.db.scan(
		ctx, domain.Trade{}, func(key string, value []byte) error {
			var trade domain.Trade
			err := r.db.decode(value, &trade)
			if err == nil && !trade.Status.IsValid() {
				err = domain.NewCorruptRecordError(domain.ErrUnknownStatus)
			}
			if err != nil {
				log.WithError(err).Warnf("skipping trade %s", key)
				return nil
			}
			if match(&trade) {
				res = append(res, &trade)
			}
			return nil
		},
	); err != nil {
		return nil, err
	}
	domain.SortTrades(res)
	return res, nil
}
