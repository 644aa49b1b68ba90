package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/coinkeeper/internal/flagx"
)

// parseFlags overlays cfg with the flags it owns; other arguments in args
// are ignored.
func parseFlags(cfg *Config, args []string) error {
	own := flagx.FilterArgs(args, []string{"-d", "-vs", "-timeout", "-log-level"})

	fs := flag.NewFlagSet("coinkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database path or postgres:// URL")
	fs.StringVar(&cfg.VsCurrency, "vs", cfg.VsCurrency, "quote currency")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(own)
}
