package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/coinkeeper/internal/flagx"
	"github.com/dmitrijs2005/coinkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Zero values leave
// the corresponding Config field untouched.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	QuoteAPIBaseURL string         `json:"quote_api_base_url"`
	QuoteAPIKeyFile string         `json:"quote_api_key_file"`
	FXAPIBaseURL    string         `json:"fx_api_base_url"`
	FXAPIKeyFile    string         `json:"fx_api_key_file"`
	VsCurrency      string         `json:"vs_currency"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	SessionTTL      timex.Duration `json:"session_ttl"`
	CacheDir        string         `json:"cache_dir"`
	LogLevel        string         `json:"log_level"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.QuoteAPIBaseURL, jc.QuoteAPIBaseURL)
	set(&cfg.QuoteAPIKeyFile, jc.QuoteAPIKeyFile)
	set(&cfg.FXAPIBaseURL, jc.FXAPIBaseURL)
	set(&cfg.FXAPIKeyFile, jc.FXAPIKeyFile)
	set(&cfg.VsCurrency, jc.VsCurrency)
	set(&cfg.CacheDir, jc.CacheDir)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	return nil
}
