package domain

import "context"

// BalanceRepository persists the custody ledger.
type BalanceRepository interface {
	// GetBalance returns the balance of the asset held by account. A missing
	// record is returned as an empty balance.
	GetBalance(ctx context.Context, account, asset Identity) (*Balance, error)
	// GetBalancesByAccount returns all non-empty balances of account.
	GetBalancesByAccount(ctx context.Context, account Identity) ([]*Balance, error)
	// UpdateBalance allows to commit changes to a balance in a transactional
	// way. The record is created if not existing.
	UpdateBalance(
		ctx context.Context, account, asset Identity,
		updateFn func(b *Balance) (*Balance, error),
	) error
}
