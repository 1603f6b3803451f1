package db_test

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	dbbadger "github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/badger"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/inmemory"
	"github.com/stretchr/testify/require"
)

type repoManager struct {
	Name      string
	DBManager ports.RepoManager
}

func (r repoManager) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), true, query)
}

func (r repoManager) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.DBManager.RunTransaction(context.Background(), false, query)
}

func createRepoManagers(t *testing.T) []repoManager {
	badgerDBManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(badgerDBManager.Close)

	return []repoManager{
		{
			Name:      "badger",
			DBManager: badgerDBManager,
		},
		{
			Name:      "inmemory",
			DBManager: inmemory.NewRepoManager(),
		},
	}
}

func randomIdentity() domain.Identity {
	var id domain.Identity
	//nolint
	rand.Read(id[:])
	return id
}

func makeRandomOffer(maker, mint domain.Identity, createdAt int64) *domain.Offer {
	offer, _ := domain.NewOffer(
		maker, mint, 100000, 10, 1000, domain.OfferTypeSell, createdAt,
	)
	return offer
}

func makeRandomTrade(maker, taker domain.Identity, createdAt int64) *domain.Trade {
	trade, _ := domain.NewTrade(
		maker, taker, randomIdentity(), 1000, 100000, domain.Address{}, maker,
		createdAt,
	)
	return trade
}
