package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type lookupFunc func(key string) (string, bool)

// envLookup consults the process environment first and then the dotenv
// file at path. A missing dotenv file is not an error.
func envLookup(path string) lookupFunc {
	dotenv, err := godotenv.Read(path)
	if err != nil {
		dotenv = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func parseEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok {
			*dst = splitList(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("COINKEEPER_DB", &cfg.DatabaseDSN)
	str("COINGECKO_API_URL", &cfg.QuoteAPIBaseURL)
	str("COINGECKO_API_KEY_FILE", &cfg.QuoteAPIKeyFile)
	list("COINGECKO_API_KEYS", &cfg.QuoteAPIKeys)
	str("EXCHANGERATE_API_URL", &cfg.FXAPIBaseURL)
	str("EXCHANGERATE_API_KEY_FILE", &cfg.FXAPIKeyFile)
	list("EXCHANGERATE_API_KEYS", &cfg.FXAPIKeys)
	str("COINKEEPER_VS_CURRENCY", &cfg.VsCurrency)
	str("COINKEEPER_CACHE_DIR", &cfg.CacheDir)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("COINKEEPER_S3_BUCKET", &cfg.S3Bucket)
	str("COINKEEPER_S3_ENDPOINT", &cfg.S3BaseEndpoint)
	str("AWS_REGION", &cfg.S3Region)
	str("AWS_ACCESS_KEY_ID", &cfg.S3AccessKey)
	str("AWS_SECRET_ACCESS_KEY", &cfg.S3SecretKey)

	if err := dur("COINKEEPER_REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return err
	}
	return dur("COINKEEPER_SESSION_TTL", &cfg.SessionTTL)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
