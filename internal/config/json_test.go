package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_dsn":    "json.db",
		"vs_currency":     "eur",
		"request_timeout": "5s",
		"session_ttl":     "12h",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "json.db", cfg.DatabaseDSN)
		assert.Equal(t, "eur", cfg.VsCurrency)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.QuoteAPIBaseURL, "absent keys keep defaults")
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := &Config{DatabaseDSN: "keep.db"}
		require.NoError(t, parseJson(cfg, []string{"-d", "x.db"}))
		assert.Equal(t, "keep.db", cfg.DatabaseDSN)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
