package ports

import (
	"context"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
)

// AssetCustody moves assets between custody accounts. Calls made with a ctx
// carrying a db transaction are committed together with it.
type AssetCustody interface {
	Transfer(
		ctx context.Context, from, to domain.Identity, amount uint64,
		asset domain.Identity,
	) error
	BalanceOf(ctx context.Context, account, asset domain.Identity) (uint64, error)
	// Credit funds an account from outside of the custody ledger.
	Credit(
		ctx context.Context, account, asset domain.Identity, amount uint64,
	) error
}
