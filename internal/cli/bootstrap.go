package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/coinkeeper/internal/config"
	"github.com/dmitrijs2005/coinkeeper/internal/export"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/market"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/services"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
)

// openDatabase is a seam for tests.
var openDatabase = repomanager.Open

// Bootstrap opens the database, loads API keys and builds the App. The
// returned *sql.DB must be closed by the caller once the App is done.
func Bootstrap(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, *sql.DB, error) {
	db, rm, err := openDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, db, rm, in, out, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return app, db, nil
}

func build(ctx context.Context, c *config.Config, db *sql.DB, rm repomanager.RepositoryManager, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	quoteKeys, err := market.LoadKeyRing(c.QuoteAPIKeys, c.QuoteAPIKeyFile)
	if err != nil {
		return nil, err
	}
	fxKeys, err := market.LoadKeyRing(c.FXAPIKeys, c.FXAPIKeyFile)
	if err != nil {
		return nil, err
	}
	if quoteKeys.Len() == 0 {
		log.Warn(ctx, "no quote API keys configured, using anonymous access")
	}
	if fxKeys.Len() == 0 {
		log.Warn(ctx, "no FX API keys configured, convert will be unavailable")
	}

	secret, err := session.LoadSecret(ctx, rm.Metadata(db))
	if err != nil {
		return nil, fmt.Errorf("failed to load session secret: %w", err)
	}

	gateway := market.New(market.Options{
		QuoteBaseURL:   c.QuoteAPIBaseURL,
		QuoteKeys:      quoteKeys,
		FXBaseURL:      c.FXAPIBaseURL,
		FXKeys:         fxKeys,
		VsCurrency:     c.VsCurrency,
		RequestTimeout: c.RequestTimeout,
		CacheDir:       c.CacheDir,
		Logger:         log.With("component", "market"),
	})

	resolver := services.NewCoinResolver(db, rm, gateway, log)
	ledger := services.NewLedgerService(db, rm, resolver, log)
	svc := Services{
		Auth:      services.NewAuthService(db, rm, session.NewManager(secret, c.SessionTTL), log),
		Ledger:    ledger,
		Valuation: services.NewValuationService(ledger, resolver, gateway, log),
		Watchlist: services.NewWatchlistService(db, rm, resolver, gateway, log),
		Notes:     services.NewNoteService(db, rm, log),
		Converter: services.NewConverterService(gateway, log),
	}
	if c.S3Enabled() {
		svc.Uploader = export.NewS3Uploader(export.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
	}

	return NewApp(svc, in, out, log), nil
}
