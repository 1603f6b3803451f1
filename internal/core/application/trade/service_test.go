package trade_test

import (
	"context"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/oracle"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/profile"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/trade"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/custody"
	dbbadger "github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/badger"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/inmemory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ctx       = context.Background()
	authority = randomIdentity()
	provider  = randomIdentity()
)

const (
	tradeAmount = uint64(1000)
	tradePrice  = uint64(100000)
)

type testEnv struct {
	repoManager ports.RepoManager
	custody     ports.AssetCustody
	publisher   *mockPublisher
	svc         *trade.Service

	maker, taker, mint domain.Identity
}

func newTestEnv(t *testing.T, repoManager ports.RepoManager) *testEnv {
	clock := fixedClock{time.Unix(1700000000, 0)}
	ledger := custody.NewLedger(repoManager)

	oracleSvc, err := oracle.NewService(repoManager, clock)
	require.NoError(t, err)
	require.NoError(t, oracleSvc.Initialize(ctx, provider))
	require.NoError(t, oracleSvc.UpdatePrices(ctx, provider, []domain.PriceQuote{
		{Currency: "USD", UsdPrice: 100000},
	}))

	profileSvc, err := profile.NewService(
		repoManager, clock, authority,
		profile.ScorePolicy{TradeCompletedDelta: 1, TradeDisputedDelta: -1},
	)
	require.NoError(t, err)

	publisher := &mockPublisher{}
	publisher.On("PublishTradeEvent", mock.Anything, mock.Anything).Return(nil)

	svc, err := trade.NewService(
		repoManager, ledger, oracleSvc, profileSvc, publisher, clock,
	)
	require.NoError(t, err)

	env := &testEnv{
		repoManager: repoManager,
		custody:     ledger,
		publisher:   publisher,
		svc:         svc,
		maker:       randomIdentity(),
		taker:       randomIdentity(),
		mint:        randomIdentity(),
	}

	_, err = profileSvc.CreateProfile(ctx, env.maker, "maker")
	require.NoError(t, err)
	_, err = profileSvc.CreateProfile(ctx, env.taker, "taker")
	require.NoError(t, err)
	require.NoError(t, ledger.Credit(ctx, env.maker, env.mint, 5000))

	return env
}

func (e *testEnv) createTrade(t *testing.T) domain.Address {
	key, err := e.svc.CreateTrade(
		ctx, e.maker, e.taker, e.mint, tradeAmount, tradePrice,
	)
	require.NoError(t, err)
	return key
}

func (e *testEnv) fundedTrade(t *testing.T) domain.Address {
	key := e.createTrade(t)
	require.NoError(t, e.svc.DepositEscrow(ctx, key, e.maker, tradeAmount))
	return key
}

func (e *testEnv) balance(t *testing.T, account domain.Identity) uint64 {
	b, err := e.custody.BalanceOf(ctx, account, e.mint)
	require.NoError(t, err)
	return b
}

func (e *testEnv) getTrade(t *testing.T, key domain.Address) *domain.Trade {
	tr, err := e.svc.GetTrade(ctx, key)
	require.NoError(t, err)
	return tr
}

func (e *testEnv) getProfile(t *testing.T, owner domain.Identity) *domain.Profile {
	res, err := e.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return e.repoManager.ProfileRepository().GetProfile(
				ctx, domain.DeriveProfileAddress(owner),
			)
		},
	)
	require.NoError(t, err)
	return res.(*domain.Profile)
}

func TestCreateTrade(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())

	key := env.createTrade(t)
	require.Equal(
		t, domain.DeriveTradeAddress(env.taker, env.maker, env.mint, tradeAmount), key,
	)

	tr := env.getTrade(t, key)
	require.Equal(t, domain.TradeStatusCreated, tr.Status)
	require.Equal(t, env.maker, tr.Depositor)
	require.Equal(t, int64(1700000000), tr.CreatedAt)
	require.Zero(t, env.balance(t, tr.EscrowAccount))
	env.publisher.AssertCalled(t, "PublishTradeEvent", ports.TradeCreated, *tr)

	_, err := env.svc.CreateTrade(
		ctx, env.maker, env.taker, env.mint, tradeAmount, tradePrice,
	)
	require.ErrorIs(t, err, domain.ErrDuplicateAddress)

	// Same pair with a different amount is a distinct trade.
	_, err = env.svc.CreateTrade(
		ctx, env.maker, env.taker, env.mint, tradeAmount+1, tradePrice,
	)
	require.NoError(t, err)

	_, err = env.svc.CreateTrade(ctx, env.maker, env.taker, env.mint, 0, tradePrice)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = env.svc.CreateTrade(ctx, env.maker, env.maker, env.mint, 1, tradePrice)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDepositEscrow(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())
	key := env.createTrade(t)

	tests := []struct {
		name          string
		depositor     domain.Identity
		amount        uint64
		expectedError error
	}{
		{"not_depositor", env.taker, tradeAmount, domain.ErrUnauthorized},
		{"amount_mismatch", env.maker, tradeAmount - 1, domain.ErrAmountMismatch},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			err := env.svc.DepositEscrow(ctx, key, tt.depositor, tt.amount)
			require.ErrorIs(t, err, tt.expectedError)
			require.True(t, env.getTrade(t, key).IsCreated())
		})
	}

	require.NoError(t, env.svc.DepositEscrow(ctx, key, env.maker, tradeAmount))
	tr := env.getTrade(t, key)
	require.True(t, tr.IsEscrowDeposited())
	require.Equal(t, tradeAmount, env.balance(t, tr.EscrowAccount))
	require.Equal(t, uint64(4000), env.balance(t, env.maker))

	err := env.svc.DepositEscrow(ctx, key, env.maker, tradeAmount)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	require.Equal(t, tradeAmount, env.balance(t, tr.EscrowAccount))

	err = env.svc.DepositEscrow(ctx, randomKey(), env.maker, tradeAmount)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositEscrowInsufficientFunds(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())

	key, err := env.svc.CreateTrade(
		ctx, env.maker, env.taker, env.mint, 6000, tradePrice,
	)
	require.NoError(t, err)

	err = env.svc.DepositEscrow(ctx, key, env.maker, 6000)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	tr := env.getTrade(t, key)
	require.True(t, tr.IsCreated())
	require.Zero(t, env.balance(t, tr.EscrowAccount))
	require.Equal(t, uint64(5000), env.balance(t, env.maker))
}

func TestCompleteTrade(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())
	key := env.fundedTrade(t)
	escrow := env.getTrade(t, key).EscrowAccount

	err := env.svc.CompleteTrade(ctx, key, randomIdentity(), "USD", 100)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	err = env.svc.CompleteTrade(ctx, key, env.taker, "GBP", 100)
	require.ErrorIs(t, err, domain.ErrPriceNotFound)
	require.True(t, env.getTrade(t, key).IsEscrowDeposited())
	require.Equal(t, tradeAmount, env.balance(t, escrow))

	require.NoError(t, env.svc.CompleteTrade(ctx, key, env.taker, "USD", 100))

	tr := env.getTrade(t, key)
	require.True(t, tr.IsCompleted())
	require.Zero(t, env.balance(t, escrow))
	require.Equal(t, tradeAmount, env.balance(t, env.taker))
	env.publisher.AssertCalled(t, "PublishTradeEvent", ports.TradeCompleted, *tr)

	makerProfile := env.getProfile(t, env.maker)
	takerProfile := env.getProfile(t, env.taker)
	require.Equal(t, uint64(1), makerProfile.TradesCompleted)
	require.Equal(t, uint64(1), takerProfile.TradesCompleted)
	require.Equal(t, int64(1), takerProfile.ReputationScore)

	// A second completion must not pay out or count twice.
	err = env.svc.CompleteTrade(ctx, key, env.maker, "USD", 100)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	require.Equal(t, tradeAmount, env.balance(t, env.taker))
	require.Equal(t, uint64(1), env.getProfile(t, env.taker).TradesCompleted)
}

func TestCompleteTradePriceOutOfRange(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())

	key, err := env.svc.CreateTrade(
		ctx, env.maker, env.taker, env.mint, tradeAmount, 101100,
	)
	require.NoError(t, err)
	require.NoError(t, env.svc.DepositEscrow(ctx, key, env.maker, tradeAmount))

	err = env.svc.CompleteTrade(ctx, key, env.taker, "USD", 100)
	require.ErrorIs(t, err, domain.ErrPriceOutOfRange)

	tr := env.getTrade(t, key)
	require.True(t, tr.IsEscrowDeposited())
	require.Equal(t, tradeAmount, env.balance(t, tr.EscrowAccount))
	require.Zero(t, env.getProfile(t, env.maker).TradesCompleted)
}

func TestCompleteTradeMissingProfile(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())
	stranger := randomIdentity()
	require.NoError(t, env.custody.Credit(ctx, stranger, env.mint, tradeAmount))

	key, err := env.svc.CreateTrade(
		ctx, stranger, env.taker, env.mint, tradeAmount, tradePrice,
	)
	require.NoError(t, err)
	require.NoError(t, env.svc.DepositEscrow(ctx, key, stranger, tradeAmount))

	err = env.svc.CompleteTrade(ctx, key, env.taker, "USD", 100)
	require.ErrorIs(t, err, domain.ErrNotFound)

	tr := env.getTrade(t, key)
	require.True(t, tr.IsEscrowDeposited())
	require.Equal(t, tradeAmount, env.balance(t, tr.EscrowAccount))
	require.Zero(t, env.balance(t, env.taker))
}

func TestCancelTrade(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())

	created := env.createTrade(t)
	require.ErrorIs(
		t, env.svc.CancelTrade(ctx, created, env.taker), domain.ErrUnauthorized,
	)
	require.NoError(t, env.svc.CancelTrade(ctx, created, env.maker))
	require.True(t, env.getTrade(t, created).IsCancelled())
	require.ErrorIs(
		t, env.svc.CancelTrade(ctx, created, env.maker), domain.ErrInvalidState,
	)

	key, err := env.svc.CreateTrade(
		ctx, env.maker, env.taker, env.mint, 2000, tradePrice,
	)
	require.NoError(t, err)
	require.NoError(t, env.svc.DepositEscrow(ctx, key, env.maker, 2000))
	require.Equal(t, uint64(3000), env.balance(t, env.maker))

	require.NoError(t, env.svc.CancelTrade(ctx, key, env.maker))
	tr := env.getTrade(t, key)
	require.True(t, tr.IsCancelled())
	require.Zero(t, env.balance(t, tr.EscrowAccount))
	require.Equal(t, uint64(5000), env.balance(t, env.maker))
	env.publisher.AssertCalled(t, "PublishTradeEvent", ports.TradeCancelled, *tr)
}

func TestDisputeTrade(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())

	created := env.createTrade(t)
	require.ErrorIs(
		t, env.svc.DisputeTrade(ctx, created, env.taker), domain.ErrInvalidState,
	)

	key := env.createTradeWithAmount(t, 500)
	require.NoError(t, env.svc.DepositEscrow(ctx, key, env.maker, 500))

	before := env.getTrade(t, key)
	err := env.svc.DisputeTrade(ctx, key, randomIdentity())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	require.Equal(t, before, env.getTrade(t, key))

	require.NoError(t, env.svc.DisputeTrade(ctx, key, env.taker))
	tr := env.getTrade(t, key)
	require.True(t, tr.IsDisputed())
	require.Equal(t, uint64(500), env.balance(t, tr.EscrowAccount))
	require.Equal(t, uint64(1), env.getProfile(t, env.maker).TradesDisputed)
	require.Equal(t, int64(-1), env.getProfile(t, env.taker).ReputationScore)

	require.ErrorIs(
		t, env.svc.CancelTrade(ctx, key, env.maker), domain.ErrInvalidState,
	)
	require.ErrorIs(
		t, env.svc.CompleteTrade(ctx, key, env.maker, "USD", 100),
		domain.ErrInvalidState,
	)
}

func TestGetTradesByParty(t *testing.T) {
	env := newTestEnv(t, inmemory.NewRepoManager())
	first := env.createTrade(t)
	second := env.createTradeWithAmount(t, 10)

	trades, err := env.svc.GetTradesByParty(ctx, env.taker)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	keys := []domain.Address{trades[0].Key, trades[1].Key}
	require.ElementsMatch(t, []domain.Address{first, second}, keys)

	trades, err = env.svc.GetTradesByParty(ctx, randomIdentity())
	require.NoError(t, err)
	require.Empty(t, trades)

	_, err = env.svc.GetTrade(ctx, randomKey())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentCompleteTrade(t *testing.T) {
	badgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(badgerRepoManager.Close)

	repoManagers := map[string]ports.RepoManager{
		"badger":   badgerRepoManager,
		"inmemory": inmemory.NewRepoManager(),
	}

	for name, repoManager := range repoManagers {
		repoManager := repoManager
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, repoManager)
			key := env.fundedTrade(t)

			wg := &sync.WaitGroup{}
			errs := make(chan error, 2)
			for _, actor := range []domain.Identity{env.maker, env.taker} {
				actor := actor
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- env.svc.CompleteTrade(ctx, key, actor, "USD", 100)
				}()
			}
			wg.Wait()
			close(errs)

			succeeded := 0
			for err := range errs {
				if err == nil {
					succeeded++
					continue
				}
				require.ErrorIs(t, err, domain.ErrInvalidState)
			}
			require.Equal(t, 1, succeeded)
			require.Equal(t, tradeAmount, env.balance(t, env.taker))
			require.Zero(t, env.balance(t, env.getTrade(t, key).EscrowAccount))
			require.Equal(t, uint64(1), env.getProfile(t, env.taker).TradesCompleted)
		})
	}
}

func TestConcurrentDeposits(t *testing.T) {
	const numOfTrades = 40

	badgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(badgerRepoManager.Close)

	repoManagers := map[string]ports.RepoManager{
		"badger":   badgerRepoManager,
		"inmemory": inmemory.NewRepoManager(),
	}

	for name, repoManager := range repoManagers {
		repoManager := repoManager
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, repoManager)
			initialBalance := env.balance(t, env.maker)

			keys := make([]domain.Address, 0, numOfTrades)
			amounts := make(map[domain.Address]uint64, numOfTrades)
			totalAmount := uint64(0)
			for i := 1; i <= numOfTrades; i++ {
				amount := uint64(i)
				key := env.createTradeWithAmount(t, amount)
				keys = append(keys, key)
				amounts[key] = amount
				totalAmount += amount
			}

			wg := &sync.WaitGroup{}
			errs := make(chan error, numOfTrades)
			for _, key := range keys {
				key := key
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- env.svc.DepositEscrow(ctx, key, env.maker, amounts[key])
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}
			require.Equal(t, initialBalance-totalAmount, env.balance(t, env.maker))
			for _, key := range keys {
				tr := env.getTrade(t, key)
				require.Equal(t, domain.TradeStatusEscrowDeposited, tr.Status)
				require.Equal(t, amounts[key], env.balance(t, tr.EscrowAccount))
			}
		})
	}
}

func (e *testEnv) createTradeWithAmount(t *testing.T, amount uint64) domain.Address {
	key, err := e.svc.CreateTrade(ctx, e.maker, e.taker, e.mint, amount, tradePrice)
	require.NoError(t, err)
	return key
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishTradeEvent(
	event ports.TradeEvent, trade domain.Trade,
) error {
	args := m.Called(event, trade)
	return args.Error(0)
}

func randomIdentity() domain.Identity {
	var id domain.Identity
	//nolint
	rand.Read(id[:])
	return id
}

func randomKey() domain.Address {
	return domain.DeriveTradeAddress(
		randomIdentity(), randomIdentity(), randomIdentity(), 1,
	)
}
