package dbbadger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

// maxTxAttempts bounds how many times a conflicting write transaction is
// re-run before giving up.
const maxTxAttempts = 10

// ErrTxConflict is returned when a write transaction keeps conflicting with
// writes made outside of RunTransaction.
var ErrTxConflict = errors.New("db transaction aborted by concurrent writes")

type txKey struct{}

type repoManager struct {
	store *badgerhold.Store
	// writeLock serializes write transactions. Readers work on badger
	// snapshots and never take it.
	writeLock *sync.Mutex

	offerRepository       domain.OfferRepository
	tradeRepository       domain.TradeRepository
	profileRepository     domain.ProfileRepository
	priceOracleRepository domain.PriceOracleRepository
	balanceRepository     domain.BalanceRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. An empty dir opens an
// in-memory store.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var mainDir string
	if len(baseDbDir) > 0 {
		mainDir = filepath.Join(baseDbDir, "main")
	}

	store, err := createDb(mainDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening main db: %w", err)
	}

	db := txStore{store}
	return &repoManager{
		store:                 store,
		writeLock:             &sync.Mutex{},
		offerRepository:       newOfferRepositoryImpl(db),
		tradeRepository:       newTradeRepositoryImpl(db),
		profileRepository:     newProfileRepositoryImpl(db),
		priceOracleRepository: newPriceOracleRepositoryImpl(db),
		balanceRepository:     newBalanceRepositoryImpl(db),
	}, nil
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *repoManager) ProfileRepository() domain.ProfileRepository {
	return d.profileRepository
}

func (d *repoManager) PriceOracleRepository() domain.PriceOracleRepository {
	return d.priceOracleRepository
}

func (d *repoManager) BalanceRepository() domain.BalanceRepository {
	return d.balanceRepository
}

func (d *repoManager) Close() {
	d.store.Close()
}

// RunTransaction runs handler in a badger transaction. Write transactions
// run one at a time. One aborted by a conflict with a write made outside of
// RunTransaction is re-run from scratch, so that handler sees the state
// committed by the winner. The caller never gets badger.ErrConflict.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if _, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return handler(ctx)
	}

	if !readOnly {
		d.writeLock.Lock()
		defer d.writeLock.Unlock()
	}

	for attempt := 1; ; attempt++ {
		res, err := d.runTransaction(ctx, readOnly, handler)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			return nil, err
		}
		if attempt >= maxTxAttempts {
			return nil, fmt.Errorf("%w (%d attempts)", ErrTxConflict, attempt)
		}
		log.Debugf("db transaction conflict, retrying (%d)", attempt)
	}
}

func (d *repoManager) runTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	ctx = context.WithValue(ctx, txKey{}, tx)
	res, err := handler(ctx)
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
