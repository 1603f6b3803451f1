package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// HTTPListeningPortKey is the port where the HTTP API listens on.
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DBTypeKey is used to switch database type between those supported.
	DBTypeKey = "DB_TYPE"
	// ProfileAuthorityKey is the identity allowed to change reputation scores
	// and to verify profiles.
	ProfileAuthorityKey = "PROFILE_AUTHORITY"
	// OracleAdminKey is the identity the price oracle is initialized with at
	// startup, if not initialized yet.
	OracleAdminKey = "ORACLE_ADMIN"
	// PriceProviderKey is the identity the price feeder acts as when updating
	// the oracle quotes.
	PriceProviderKey = "PRICE_PROVIDER"
	// DefaultToleranceBpsKey is the price tolerance used when completing a
	// trade without specifying one.
	DefaultToleranceBpsKey = "DEFAULT_TOLERANCE_BPS"
	// TradeCompletedScoreDeltaKey is added to the reputation of both parties
	// of a completed trade.
	TradeCompletedScoreDeltaKey = "TRADE_COMPLETED_SCORE_DELTA"
	// TradeDisputedScoreDeltaKey is added to the reputation of both parties
	// of a disputed trade.
	TradeDisputedScoreDeltaKey = "TRADE_DISPUTED_SCORE_DELTA"
	// PriceFeederEnabledKey enables the kraken price feeder.
	PriceFeederEnabledKey = "PRICE_FEEDER_ENABLED"
	// PriceFeederIntervalKey is the interval in milliseconds between two
	// price updates of the same ticker.
	PriceFeederIntervalKey = "PRICE_FEEDER_INTERVAL"
	// PriceFeederTickersKey is the comma separated list of kraken tickers, in
	// BASE/QUOTE form, whose quote is the oracle currency.
	PriceFeederTickersKey = "PRICE_FEEDER_TICKERS"
	// PriceFeederURLKey overrides the kraken websocket endpoint.
	PriceFeederURLKey = "PRICE_FEEDER_URL"
	// PricePrecisionKey is the number of decimal digits of the quotes stored
	// by the oracle.
	PricePrecisionKey = "PRICE_PRECISION"
	// PriceUpdateRateKey is the max number of oracle updates per second.
	PriceUpdateRateKey = "PRICE_UPDATE_RATE"
	// WebhookTimeoutKey is the timeout of a webhook request.
	WebhookTimeoutKey = "WEBHOOK_TIMEOUT"
	// StatsIntervalKey is the interval in seconds for logging memory
	// statistics. Zero disables them.
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation = "db"

	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("escrowd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ESCROW")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(DefaultToleranceBpsKey, 100)
	vip.SetDefault(TradeCompletedScoreDeltaKey, 0)
	vip.SetDefault(TradeDisputedScoreDeltaKey, 0)
	vip.SetDefault(PriceFeederEnabledKey, false)
	vip.SetDefault(PriceFeederIntervalKey, 5000)
	vip.SetDefault(PriceFeederTickersKey, "XBT/USD")
	vip.SetDefault(PricePrecisionKey, 2)
	vip.SetDefault(PriceUpdateRateKey, 1)
	vip.SetDefault(WebhookTimeoutKey, 15*time.Second)
	vip.SetDefault(StatsIntervalKey, 0)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetInt64(key string) int64 {
	return vip.GetInt64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetIdentity returns the identity at key, or the zero identity if not set.
func GetIdentity(key string) domain.Identity {
	id, _ := domain.NewIdentityFromString(GetString(key))
	return id
}

func GetTickers() []string {
	tickers := make([]string, 0)
	for _, t := range strings.Split(GetString(PriceFeederTickersKey), ",") {
		if t = strings.TrimSpace(t); len(t) > 0 {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

func GetPriceFeederInterval() time.Duration {
	return time.Duration(GetInt(PriceFeederIntervalKey)) * time.Millisecond
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf("%s must be in range [%d, %d]",
			LogLevelKey, log.PanicLevel, log.TraceLevel)
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf("%s must be one of %s, %s", DBTypeKey, DBBadger, DBInMemory)
	}

	for _, key := range []string{
		ProfileAuthorityKey, OracleAdminKey, PriceProviderKey,
	} {
		if !vip.IsSet(key) || len(GetString(key)) <= 0 {
			continue
		}
		if _, err := domain.NewIdentityFromString(GetString(key)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	bps := GetInt(DefaultToleranceBpsKey)
	if bps < 0 || int64(bps) > math.MaxUint32 {
		return fmt.Errorf("%s out of range", DefaultToleranceBpsKey)
	}

	if GetBool(PriceFeederEnabledKey) {
		if GetIdentity(PriceProviderKey).IsZero() {
			return fmt.Errorf(
				"%s is required when the price feeder is enabled", PriceProviderKey,
			)
		}
		if len(GetTickers()) <= 0 {
			return fmt.Errorf("missing price feeder tickers")
		}
		if GetInt(PriceFeederIntervalKey) <= 0 {
			return fmt.Errorf("%s must be positive", PriceFeederIntervalKey)
		}
	}

	precision := GetInt(PricePrecisionKey)
	if precision < 0 || precision > 18 {
		return fmt.Errorf("%s must be in range [0, 18]", PricePrecisionKey)
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != DBBadger {
		return nil
	}
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
