package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "coinkeeper.db", c.DatabaseDSN)
	assert.Equal(t, "https://api.coingecko.com/api/v3", c.QuoteAPIBaseURL)
	assert.Equal(t, "coingecko_API_keys.txt", c.QuoteAPIKeyFile)
	assert.Equal(t, "https://v6.exchangerate-api.com/v6", c.FXAPIBaseURL)
	assert.Equal(t, "usd", c.VsCurrency)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, "info", c.LogLevel)
	assert.NotEmpty(t, c.CacheDir)
	assert.False(t, c.S3Enabled())
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("COINKEEPER_DB", "from-env.db")
	t.Setenv("COINKEEPER_VS_CURRENCY", "eur")

	cfg, err := LoadConfig([]string{"-d", "from-flag.db"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.db", cfg.DatabaseDSN)
	assert.Equal(t, "eur", cfg.VsCurrency)
}

func TestLoadConfig_BadFlag(t *testing.T) {
	_, err := LoadConfig([]string{"-timeout", "soon"})
	require.Error(t, err)
}
