package inmemory

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type priceOracleRepositoryImpl struct {
	store *store
}

func NewPriceOracleRepositoryImpl(store *store) domain.PriceOracleRepository {
	return &priceOracleRepositoryImpl{store}
}

func (r priceOracleRepositoryImpl) GetPriceOracle(
	ctx context.Context,
) (*domain.PriceOracle, error) {
	oracle := &domain.PriceOracle{}
	if err := r.store.with(ctx, true, func(t *tables) error {
		if t.oracle != nil {
			oracle = cloneOracle(*t.oracle)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return oracle, nil
}

func (r priceOracleRepositoryImpl) UpdatePriceOracle(
	ctx context.Context,
	updateFn func(o *domain.PriceOracle) (*domain.PriceOracle, error),
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		oracle := &domain.PriceOracle{}
		if t.oracle != nil {
			oracle = cloneOracle(*t.oracle)
		}
		updatedOracle, err := updateFn(oracle)
		if err != nil {
			return err
		}
		t.oracle = cloneOracle(*updatedOracle)
		return nil
	})
}
