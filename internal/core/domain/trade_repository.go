package domain

import "context"

// TradeRepository is the abstraction for any kind of database intended to
// persist Trades.
type TradeRepository interface {
	// AddTrade stores a new trade, failing with ErrDuplicateAddress if one
	// already exists at the same key.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given key.
	GetTrade(ctx context.Context, key Address) (*Trade, error)
	// GetAllTrades returns all the trades stored in the repository.
	GetAllTrades(ctx context.Context) ([]*Trade, error)
	// GetTradesByParty returns all the trades where the given identity is
	// either the maker or the taker.
	GetTradesByParty(ctx context.Context, party Identity) ([]*Trade, error)
	// UpdateTrade allows to commit multiple changes to the same trade in a
	// transactional way.
	UpdateTrade(
		ctx context.Context, key Address,
		updateFn func(t *Trade) (*Trade, error),
	) error
}
