package dbbadger

import (
	"context"
	"errors"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type balanceRepositoryImpl struct {
	db txStore
}

func newBalanceRepositoryImpl(db txStore) domain.BalanceRepository {
	return balanceRepositoryImpl{db}
}

func (r balanceRepositoryImpl) GetBalance(
	ctx context.Context, account, asset domain.Identity,
) (*domain.Balance, error) {
	balance := domain.NewBalance(account, asset)
	if err := r.db.get(ctx, balance.Key.String(), balance); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewBalance(account, asset), nil
		}
		return nil, err
	}
	return balance, nil
}

func (r balanceRepositoryImpl) GetBalancesByAccount(
	ctx context.Context, account domain.Identity,
) ([]*domain.Balance, error) {
	var balances []domain.Balance
	if err := r.db.find(ctx, &balances, nil); err != nil {
		return nil, err
	}

	res := make([]*domain.Balance, 0)
	for i := range balances {
		b := balances[i]
		if b.Account == account && b.Amount > 0 {
			res = append(res, &b)
		}
	}
	domain.SortBalances(res)
	return res, nil
}

func (r balanceRepositoryImpl) UpdateBalance(
	ctx context.Context, account, asset domain.Identity,
	updateFn func(b *domain.Balance) (*domain.Balance, error),
) error {
	balance, err := r.GetBalance(ctx, account, asset)
	if err != nil {
		return err
	}

	updatedBalance, err := updateFn(balance)
	if err != nil {
		return err
	}

	return r.db.upsert(ctx, balance.Key.String(), *updatedBalance)
}
