package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Local-DAO/LocalMoney-sub000/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testIdentity = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("ESCROW_DATADIR", datadir)

	require.NoError(t, config.InitConfig())

	require.Equal(t, datadir, config.GetDatadir())
	require.Equal(t, log.InfoLevel, config.GetLogLevel())
	require.Equal(t, 9945, config.GetInt(config.HTTPListeningPortKey))
	require.Equal(t, config.DBBadger, config.GetString(config.DBTypeKey))
	require.Equal(t, 100, config.GetInt(config.DefaultToleranceBpsKey))
	require.Equal(t, 2, config.GetInt(config.PricePrecisionKey))
	require.Equal(t, []string{"XBT/USD"}, config.GetTickers())
	require.Equal(t, 5*time.Second, config.GetPriceFeederInterval())
	require.Equal(t, 15*time.Second, config.GetDuration(config.WebhookTimeoutKey))
	require.True(t, config.GetIdentity(config.ProfileAuthorityKey).IsZero())

	_, err := os.Stat(filepath.Join(datadir, config.DbLocation))
	require.NoError(t, err)
}

func TestInitConfigWithEnv(t *testing.T) {
	t.Setenv("ESCROW_DATADIR", t.TempDir())
	t.Setenv("ESCROW_DB_TYPE", "inmemory")
	t.Setenv("ESCROW_PROFILE_AUTHORITY", testIdentity)
	t.Setenv("ESCROW_PRICE_FEEDER_ENABLED", "true")
	t.Setenv("ESCROW_PRICE_PROVIDER", testIdentity)
	t.Setenv("ESCROW_PRICE_FEEDER_TICKERS", "XBT/USD, XBT/EUR")
	t.Setenv("ESCROW_TRADE_DISPUTED_SCORE_DELTA", "-5")

	require.NoError(t, config.InitConfig())

	require.Equal(t, testIdentity, config.GetIdentity(config.ProfileAuthorityKey).String())
	require.Equal(t, []string{"XBT/USD", "XBT/EUR"}, config.GetTickers())
	require.Equal(t, int64(-5), config.GetInt64(config.TradeDisputedScoreDeltaKey))
}

func TestFailingInitConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"invalid_db_type", map[string]string{"ESCROW_DB_TYPE": "postgres"}},
		{"invalid_log_level", map[string]string{"ESCROW_LOG_LEVEL": "9"}},
		{"invalid_authority", map[string]string{"ESCROW_PROFILE_AUTHORITY": "nope"}},
		{"feeder_without_provider", map[string]string{
			"ESCROW_PRICE_FEEDER_ENABLED": "true",
		}},
		{"invalid_precision", map[string]string{"ESCROW_PRICE_PRECISION": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ESCROW_DATADIR", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Error(t, config.InitConfig())
		})
	}
}
