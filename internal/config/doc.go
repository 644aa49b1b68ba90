// Package config loads runtime configuration for coinkeeper.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory plus the process environment;
//     the real environment wins over .env.
//  3. An optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// # Environment
//
//	COINKEEPER_DB                database path or postgres:// URL
//	COINGECKO_API_URL            quote provider base URL
//	COINGECKO_API_KEYS           comma separated keys, tried before the key file
//	COINGECKO_API_KEY_FILE       file with one key per line
//	EXCHANGERATE_API_URL         FX provider base URL
//	EXCHANGERATE_API_KEYS        comma separated keys
//	EXCHANGERATE_API_KEY_FILE    file with one key per line
//	COINKEEPER_VS_CURRENCY       quote currency, e.g. usd
//	COINKEEPER_REQUEST_TIMEOUT   per request timeout, e.g. 10s
//	COINKEEPER_SESSION_TTL       session lifetime, e.g. 24h
//	COINKEEPER_CACHE_DIR         search response cache directory
//	LOG_LEVEL                    debug, info, warn, error
//	COINKEEPER_S3_BUCKET         enables "export" uploads when set
//	COINKEEPER_S3_ENDPOINT       S3 compatible endpoint (optional)
//	AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
//
// # JSON
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "database_dsn": "coinkeeper.db",
//	  "vs_currency": "eur",
//	  "request_timeout": "5s",
//	  "session_ttl": "12h"
//	}
//
// # Flags
//
//	-d string         database path or postgres:// URL
//	-vs string        quote currency
//	-timeout duration per request timeout
//	-log-level string log level
package config
