package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/services"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
)

// Uploader ships an export file somewhere and returns where it went.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte) (string, error)
}

// Services is everything the REPL talks to. Uploader may be nil, which
// keeps exports local.
type Services struct {
	Auth      services.AuthService
	Ledger    services.LedgerService
	Valuation services.ValuationService
	Watchlist services.WatchlistService
	Notes     services.NoteService
	Converter services.ConverterService
	Uploader  Uploader
}

type App struct {
	svc     Services
	session *session.Session
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
	log     logging.Logger
}

func NewApp(svc Services, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		svc:    svc,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
		log:    log,
	}
}

// Run resumes a remembered session if there is one and then serves commands
// until exit, end of input or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to coinkeeper (type 'help' for commands)")
	a.resume(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.Valid(a.now())
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.Username)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
