package inmemory

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

type balanceRepositoryImpl struct {
	store *store
}

func NewBalanceRepositoryImpl(store *store) domain.BalanceRepository {
	return &balanceRepositoryImpl{store}
}

func (r balanceRepositoryImpl) GetBalance(
	ctx context.Context, account, asset domain.Identity,
) (*domain.Balance, error) {
	balance := domain.NewBalance(account, asset)
	if err := r.store.with(ctx, true, func(t *tables) error {
		if b, ok := t.balances[balance.Key]; ok {
			*balance = b
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return balance, nil
}

func (r balanceRepositoryImpl) GetBalancesByAccount(
	ctx context.Context, account domain.Identity,
) ([]*domain.Balance, error) {
	balances := make([]*domain.Balance, 0)
	if err := r.store.with(ctx, true, func(t *tables) error {
		for _, b := range t.balances {
			balance := b
			if balance.Account == account && balance.Amount > 0 {
				balances = append(balances, &balance)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	domain.SortBalances(balances)
	return balances, nil
}

func (r balanceRepositoryImpl) UpdateBalance(
	ctx context.Context, account, asset domain.Identity,
	updateFn func(b *domain.Balance) (*domain.Balance, error),
) error {
	return r.store.with(ctx, false, func(t *tables) error {
		balance := domain.NewBalance(account, asset)
		if b, ok := t.balances[balance.Key]; ok {
			*balance = b
		}
		updatedBalance, err := updateFn(balance)
		if err != nil {
			return err
		}
		t.balances[balance.Key] = *updatedBalance
		return nil
	})
}
