package inmemory

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
)

type repoManager struct {
	store *store

	offerRepository       domain.OfferRepository
	tradeRepository       domain.TradeRepository
	profileRepository     domain.ProfileRepository
	priceOracleRepository domain.PriceOracleRepository
	balanceRepository     domain.BalanceRepository
}

func NewRepoManager() ports.RepoManager {
	s := newStore()

	return &repoManager{
		store:                 s,
		offerRepository:       NewOfferRepositoryImpl(s),
		tradeRepository:       NewTradeRepositoryImpl(s),
		profileRepository:     NewProfileRepositoryImpl(s),
		priceOracleRepository: NewPriceOracleRepositoryImpl(s),
		balanceRepository:     NewBalanceRepositoryImpl(s),
	}
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *repoManager) ProfileRepository() domain.ProfileRepository {
	return d.profileRepository
}

func (d *repoManager) PriceOracleRepository() domain.PriceOracleRepository {
	return d.priceOracleRepository
}

func (d *repoManager) BalanceRepository() domain.BalanceRepository {
	return d.balanceRepository
}

func (d *repoManager) Close() {}

func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return d.store.run(ctx, readOnly, handler)
}
