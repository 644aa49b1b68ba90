package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/cryptox"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
	"github.com/dmitrijs2005/coinkeeper/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ---- fake gateway ----

type fakeGateway struct {
	quotes    map[string]models.Quote
	quotesErr error
	resolve   map[string]string
	search    map[string][]models.CoinRef
	rates     map[string]decimal.Decimal

	quoteCalls  int
	lastIDs     []string
	searchCalls int
}

func (g *fakeGateway) Quotes(_ context.Context, ids []string) (map[string]models.Quote, error) {
	g.quoteCalls++
	g.lastIDs = append([]string(nil), ids...)
	if g.quotesErr != nil {
		return map[string]models.Quote{}, g.quotesErr
	}
	out := map[string]models.Quote{}
	for _, id := range ids {
		if q, ok := g.quotes[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (g *fakeGateway) Search(_ context.Context, query string) ([]models.CoinRef, error) {
	g.searchCalls++
	return g.search[strings.ToLower(query)], nil
}

func (g *fakeGateway) ResolveTicker(_ context.Context, coinName string) (string, error) {
	if t, ok := g.resolve[strings.ToLower(coinName)]; ok {
		return t, nil
	}
	return "", common.ErrUnresolvedTicker
}

func (g *fakeGateway) FXRate(_ context.Context, base, quote string) (decimal.Decimal, error) {
	if r, ok := g.rates[base+"/"+quote]; ok {
		return r, nil
	}
	return decimal.Zero, common.ErrQuoteUnavailable
}

// ---- fixture ----

type fixture struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	gw        *fakeGateway
	sessions  *session.Manager
	auth      AuthService
	resolver  CoinResolver
	ledger    LedgerService
	valuation ValuationService
	watch     WatchlistService
	notes     NoteService
	converter ConverterService
}

func fastParams() cryptox.Params {
	return cryptox.Params{KDF: cryptox.KDFPBKDF2SHA256, Iterations: 1, KeyLength: cryptox.DefaultKeyLength}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SQLite(t)
	rm := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	gw := &fakeGateway{
		quotes:  map[string]models.Quote{},
		resolve: map[string]string{},
		search:  map[string][]models.CoinRef{},
		rates:   map[string]decimal.Decimal{},
	}
	log := logging.Discard()
	sessions := session.NewManager([]byte("test-secret"), time.Hour)
	resolver := NewCoinResolver(db, rm, gw, log)
	ledger := NewLedgerService(db, rm, resolver, log)

	return &fixture{
		db:        db,
		rm:        rm,
		gw:        gw,
		sessions:  sessions,
		auth:      NewAuthService(db, rm, sessions, log, WithCredentialParams(fastParams())),
		resolver:  resolver,
		ledger:    ledger,
		valuation: NewValuationService(ledger, resolver, gw, log),
		watch:     NewWatchlistService(db, rm, resolver, gw, log),
		notes:     NewNoteService(db, rm, log),
		converter: NewConverterService(gw, log),
	}
}

// login registers username and returns a live session for it.
func (f *fixture) login(t *testing.T, username string) *session.Session {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.Register(ctx, username, []byte("pw-"+username)))
	s, err := f.auth.Login(ctx, username, []byte("pw-"+username))
	require.NoError(t, err)
	return s
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}
