package db_test

import (
	"context"
	"testing"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestTradeRepositoryImplementations(t *testing.T) {
	repositories := createRepoManagers(t)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("testAddGetTrade", func(t *testing.T) {
				t.Parallel()
				testAddGetTrade(t, repo)
			})

			t.Run("testGetTradesByParty", func(t *testing.T) {
				t.Parallel()
				testGetTradesByParty(t, repo)
			})

			t.Run("testUpdateTrade", func(t *testing.T) {
				t.Parallel()
				testUpdateTrade(t, repo)
			})
		})
	}
}

func testAddGetTrade(t *testing.T, repo repoManager) {
	trade := makeRandomTrade(randomIdentity(), randomIdentity(), 1)

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.TradeRepository().AddTrade(ctx, trade)
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.TradeRepository().AddTrade(ctx, trade)
	})
	require.ErrorIs(t, err, domain.ErrDuplicateAddress)

	iTrade, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.TradeRepository().GetTrade(ctx, trade.Key)
	})
	require.NoError(t, err)
	require.Equal(t, *trade, *iTrade.(*domain.Trade))

	iTrades, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.TradeRepository().GetAllTrades(ctx)
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(iTrades.([]*domain.Trade)), 1)
}

func testGetTradesByParty(t *testing.T, repo repoManager) {
	party := randomIdentity()
	trades := []*domain.Trade{
		makeRandomTrade(party, randomIdentity(), 5),
		makeRandomTrade(randomIdentity(), party, 2),
		makeRandomTrade(randomIdentity(), randomIdentity(), 1),
	}

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		for _, tr := range trades {
			if err := repo.DBManager.TradeRepository().AddTrade(ctx, tr); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	require.NoError(t, err)

	iTrades, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.TradeRepository().GetTradesByParty(ctx, party)
	})
	require.NoError(t, err)
	found := iTrades.([]*domain.Trade)
	require.Len(t, found, 2)
	require.Equal(t, trades[1].Key, found[0].Key)
	require.Equal(t, trades[0].Key, found[1].Key)

	iTrades, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.TradeRepository().GetTradesByParty(
			ctx, randomIdentity(),
		)
	})
	require.NoError(t, err)
	require.Len(t, iTrades.([]*domain.Trade), 0)
}

func testUpdateTrade(t *testing.T, repo repoManager) {
	trade := makeRandomTrade(randomIdentity(), randomIdentity(), 1)

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		if err := repo.DBManager.TradeRepository().AddTrade(ctx, trade); err != nil {
			return nil, err
		}
		return nil, repo.DBManager.TradeRepository().UpdateTrade(
			ctx, trade.Key, func(tr *domain.Trade) (*domain.Trade, error) {
				if err := tr.Deposit(tr.Depositor, tr.Amount, 2); err != nil {
					return nil, err
				}
				return tr, nil
			},
		)
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.DBManager.TradeRepository().UpdateTrade(
			ctx, trade.Key, func(tr *domain.Trade) (*domain.Trade, error) {
				if err := tr.Deposit(tr.Depositor, tr.Amount, 3); err != nil {
					return nil, err
				}
				return tr, nil
			},
		)
	})
	require.ErrorIs(t, err, domain.ErrInvalidState)

	iTrade, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.DBManager.TradeRepository().GetTrade(ctx, trade.Key)
	})
	require.NoError(t, err)
	require.True(t, iTrade.(*domain.Trade).IsEscrowDeposited())
	require.Equal(t, int64(2), iTrade.(*domain.Trade).UpdatedAt)
}
