package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the coinkeeper CLI.
type Config struct {
	DatabaseDSN string

	QuoteAPIBaseURL string
	QuoteAPIKeyFile string
	QuoteAPIKeys    []string

	FXAPIBaseURL string
	FXAPIKeyFile string
	FXAPIKeys    []string

	VsCurrency     string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	CacheDir       string
	LogLevel       string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "coinkeeper.db"
	c.QuoteAPIBaseURL = "https://api.coingecko.com/api/v3"
	c.QuoteAPIKeyFile = "coingecko_API_keys.txt"
	c.FXAPIBaseURL = "https://v6.exchangerate-api.com/v6"
	c.FXAPIKeyFile = "exchangerate_API_keys.txt"
	c.VsCurrency = "usd"
	c.RequestTimeout = 10 * time.Second
	c.SessionTTL = 24 * time.Hour
	c.CacheDir = defaultCacheDir()
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// S3Enabled reports whether export uploads are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, .env and environment, the JSON
// file and finally the command-line flags in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envLookup(".env")); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".coinkeeper-cache"
	}
	return dir + string(os.PathSeparator) + "coinkeeper"
}
