package ports

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

// RepoManager interface defines the methods for offers, trades, profiles,
// the price oracle and the custody balances.
type RepoManager interface {
	OfferRepository() domain.OfferRepository
	TradeRepository() domain.TradeRepository
	ProfileRepository() domain.ProfileRepository
	PriceOracleRepository() domain.PriceOracleRepository
	BalanceRepository() domain.BalanceRepository

	Close()

	// RunTransaction runs handler in a single db transaction. All repository
	// calls made with the ctx passed to handler join the transaction. The
	// transaction is committed only if handler returns no error. A nested
	// call with a ctx that already carries a transaction joins it.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}
