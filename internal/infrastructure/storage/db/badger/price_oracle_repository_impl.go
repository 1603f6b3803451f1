package dbbadger

import (
	"context"
	"errors"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type priceOracleRepositoryImpl struct {
	db txStore
}

func newPriceOracleRepositoryImpl(db txStore) domain.PriceOracleRepository {
	return priceOracleRepositoryImpl{db}
}

func (r priceOracleRepositoryImpl) GetPriceOracle(
	ctx context.Context,
) (*domain.PriceOracle, error) {
	var oracle domain.PriceOracle
	if err := r.db.get(
		ctx, domain.PriceOracleAddress.String(), &oracle,
	); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.PriceOracle{}, nil
		}
		return nil, err
	}
	return &oracle, nil
}

func (r priceOracleRepositoryImpl) UpdatePriceOracle(
	ctx context.Context,
	updateFn func(o *domain.PriceOracle) (*domain.PriceOracle, error),
) error {
	oracle, err := r.GetPriceOracle(ctx)
	if err != nil {
		return err
	}

	updatedOracle, err := updateFn(oracle)
	if err != nil {
		return err
	}

	return r.db.upsert(ctx, domain.PriceOracleAddress.String(), *updatedOracle)
}
