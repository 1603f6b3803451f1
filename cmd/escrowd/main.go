package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/config"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/offer"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/oracle"
	priceupdater "github.com/Local-DAO/LocalMoney-sub000/internal/core/application/price-updater"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/profile"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/pubsub"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/application/trade"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/ports"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/custody"
	krakenfeeder "github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/feeder/kraken"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/metrics"
	pubsubinfra "github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/pubsub"
	dbbadger "github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/badger"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/Local-DAO/LocalMoney-sub000/internal/interfaces/http"
	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	log.SetLevel(config.GetLogLevel())

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)

	var dbLogger badger.Logger
	if config.GetLogLevel() >= log.DebugLevel {
		dbLogger = log.StandardLogger()
	}

	var repoManager ports.RepoManager
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		repoManager = inmemory.NewRepoManager()
		dbDir = ""
	default:
		rm, err := dbbadger.NewRepoManager(dbDir, dbLogger)
		if err != nil {
			log.WithError(err).Fatal("failed to open db")
		}
		repoManager = rm
	}
	defer repoManager.Close()

	pubsubSvc, err := pubsubinfra.NewService(
		dbDir, dbLogger, config.GetDuration(config.WebhookTimeoutKey),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to open webhook store")
	}
	webhookSvc := pubsub.NewService(pubsubSvc)
	defer webhookSvc.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	publisher, err := metrics.NewTradePublisher(registry, webhookSvc)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	ledger := custody.NewLedger(repoManager)

	oracleSvc, err := oracle.NewService(repoManager, nil)
	if err != nil {
		log.WithError(err).Fatal("failed to init oracle service")
	}
	profileSvc, err := profile.NewService(
		repoManager, nil, config.GetIdentity(config.ProfileAuthorityKey),
		profile.ScorePolicy{
			TradeCompletedDelta: config.GetInt64(config.TradeCompletedScoreDeltaKey),
			TradeDisputedDelta:  config.GetInt64(config.TradeDisputedScoreDeltaKey),
		},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init profile service")
	}
	tradeSvc, err := trade.NewService(
		repoManager, ledger, oracleSvc, profileSvc, publisher, nil,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init trade service")
	}
	offerSvc, err := offer.NewService(repoManager, tradeSvc, nil)
	if err != nil {
		log.WithError(err).Fatal("failed to init offer service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initOracle(ctx, oracleSvc); err != nil {
		log.WithError(err).Fatal("failed to initialize price oracle")
	}

	if interval := config.GetInt(config.StatsIntervalKey); interval > 0 {
		metrics.EnableMemoryStatistics(ctx, time.Duration(interval)*time.Second)
	}

	if config.GetBool(config.PriceFeederEnabledKey) {
		updaterSvc, err := startPriceUpdater(oracleSvc)
		if err != nil {
			log.WithError(err).Fatal("failed to start price feeder")
		}
		defer updaterSvc.Stop()
	}

	httpSvc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port: config.GetInt(config.HTTPListeningPortKey),
		Services: httpinterface.Services{
			OfferSvc:   offerSvc,
			TradeSvc:   tradeSvc,
			ProfileSvc: profileSvc,
			OracleSvc:  oracleSvc,
			Custody:    ledger,
			WebhookSvc: webhookSvc,
			Gatherer:   registry,
			DefaultToleranceBps: uint32(
				config.GetInt(config.DefaultToleranceBpsKey),
			),
		},
	})
	if err != nil {
		log.WithError(err).Fatal("failed to init http interface")
	}
	if err := httpSvc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start http interface")
	}
	defer httpSvc.Stop()

	log.Info("escrow daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down escrow daemon")
}

// initOracle initializes the price oracle with the configured admin on first
// start and keeps its price provider aligned with the configured one.
func initOracle(ctx context.Context, oracleSvc *oracle.Service) error {
	admin := config.GetIdentity(config.OracleAdminKey)
	if admin.IsZero() {
		return nil
	}

	ok, err := oracleSvc.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if !ok {
		if err := oracleSvc.Initialize(ctx, admin); err != nil {
			return err
		}
	}

	provider := config.GetIdentity(config.PriceProviderKey)
	if provider.IsZero() {
		return nil
	}
	o, err := oracleSvc.GetOracle(ctx)
	if err != nil {
		return err
	}
	if o.PriceProvider == provider {
		return nil
	}
	if err := oracleSvc.SetPriceProvider(ctx, admin, provider); err != nil {
		return err
	}
	log.Infof("price provider set to %s", provider)
	return nil
}

func startPriceUpdater(
	oracleSvc *oracle.Service,
) (*priceupdater.Service, error) {
	feeder, err := krakenfeeder.NewKrakenPriceFeeder(
		config.GetString(config.PriceFeederURLKey),
		config.GetPriceFeederInterval(),
	)
	if err != nil {
		return nil, err
	}

	markets := make([]ports.Market, 0)
	for _, ticker := range config.GetTickers() {
		market, err := priceupdater.NewMarket(ticker)
		if err != nil {
			return nil, err
		}
		markets = append(markets, market)
	}

	svc, err := priceupdater.NewService(
		feeder, oracleSvc, config.GetIdentity(config.PriceProviderKey), markets,
		int32(config.GetInt(config.PricePrecisionKey)),
		config.GetInt(config.PriceUpdateRateKey),
	)
	if err != nil {
		return nil, err
	}
	if err := svc.Start(); err != nil {
		return nil, err
	}
	return svc, nil
}
