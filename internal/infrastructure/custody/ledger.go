package custody

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// ledger keeps custody balances in the same store as the records, so that
// transfers commit together with the transaction carried by the context.
type ledger struct {
	repoManager ports.RepoManager
}

func NewLedger(repoManager ports.RepoManager) ports.AssetCustody {
	return &ledger{repoManager}
}

func (l *ledger) Transfer(
	ctx context.Context, from, to domain.Identity, amount uint64,
	asset domain.Identity,
) error {
	if amount == 0 {
		return domain.ErrInvalidAmount
	}

	_, err := l.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			repo := l.repoManager.BalanceRepository()
			if err := repo.UpdateBalance(
				ctx, from, asset,
				func(b *domain.Balance) (*domain.Balance, error) {
					if err := b.Debit(amount); err != nil {
						return nil, err
					}
					return b, nil
				},
			); err != nil {
				return nil, err
			}

			if err := repo.UpdateBalance(
				ctx, to, asset,
				func(b *domain.Balance) (*domain.Balance, error) {
					if err := b.Credit(amount); err != nil {
						return nil, err
					}
					return b, nil
				},
			); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)
	if err != nil {
		return err
	}

	log.Debugf("transferred %d of %s from %s to %s", amount, asset, from, to)
	return nil
}

func (l *ledger) BalanceOf(
	ctx context.Context, account, asset domain.Identity,
) (uint64, error) {
	res, err := l.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return l.repoManager.BalanceRepository().GetBalance(ctx, account, asset)
		},
	)
	if err != nil {
		return 0, err
	}
	return res.(*domain.Balance).Amount, nil
}

func (l *ledger) Credit(
	ctx context.Context, account, asset domain.Identity, amount uint64,
) error {
	if account.IsZero() || asset.IsZero() {
		return domain.ErrInvalidIdentity
	}
	if amount == 0 {
		return domain.ErrInvalidAmount
	}

	_, err := l.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, l.repoManager.BalanceRepository().UpdateBalance(
				ctx, account, asset,
				func(b *domain.Balance) (*domain.Balance, error) {
					if err := b.Credit(amount); err != nil {
						return nil, err
					}
					return b, nil
				},
			)
		},
	)
	return err
}
