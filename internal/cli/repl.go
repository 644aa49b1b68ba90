package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Watch(ctx context.Context, args []string) error
	Prices(ctx context.Context, args []string) error
	Buy(ctx context.Context, args []string) error
	Sell(ctx context.Context, args []string) error
	Portfolio(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Convert(ctx context.Context, args []string) error
	Notes(ctx context.Context) error
	Note(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, convert, exit"
	helpLoggedIn  = `Available commands:
  watch [add <coin> | rm <ticker>]   show or edit the watch list
  prices [column] [asc|desc]         live prices for the watch list
  buy [coin value quantity]          record a purchase
  sell [coin value quantity]         record a sale
  portfolio [column] [asc|desc]      value holdings at live prices
  history                            list all transactions
  export [file]                      write transactions to CSV
  convert [amount from to]           convert between fiat currencies
  notes                              list notes
  note add | show <id> | edit <id> | rm <id>
  logout, exit`
)

// runREPL reads one command per line and dispatches it to a. The first token
// is the command, the rest are its arguments. Errors returned by handlers
// are shown to the user and the loop carries on. It returns on end of input,
// "exit" or "quit", or when ctx is cancelled.
//
// Commands that need a user answer "Please log in first." until someone
// logs in.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("ck%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "convert":
			cmdErr = a.Convert(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "watch", "prices", "buy", "sell", "portfolio", "history", "export", "notes", "note":
			if !a.isLoggedIn() {
				printlnFn("Please log in first.")
				continue
			}
			cmdErr = dispatchUser(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", userMessage(cmdErr))
		}
	}
}

func dispatchUser(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "watch":
		return a.Watch(ctx, args)
	case "prices":
		return a.Prices(ctx, args)
	case "buy":
		return a.Buy(ctx, args)
	case "sell":
		return a.Sell(ctx, args)
	case "portfolio":
		return a.Portfolio(ctx, args)
	case "history":
		return a.History(ctx)
	case "export":
		return a.Export(ctx, args)
	case "notes":
		return a.Notes(ctx)
	case "note":
		return a.Note(ctx, args)
	}
	return nil
}

var userMessages = []struct {
	err error
	msg string
}{
	{common.ErrDuplicateCredential, "that username is already taken"},
	{common.ErrInvalidCredential, "invalid username or password"},
	{common.ErrTokenExpired, "your session has expired, please log in again"},
	{common.ErrorUnauthorized, "please log in first"},
	{common.ErrEmptyInput, "please fill in all fields"},
	{common.ErrInvalidAmount, "amounts must be positive numbers"},
	{common.ErrUnresolvedTicker, "could not find that coin"},
	{common.ErrInsufficientHoldings, "you cannot sell more than you hold"},
	{common.ErrLastWatchEntry, "the watch list must keep at least one coin"},
	{common.ErrQuoteUnavailable, "market data is unavailable right now"},
	{common.ErrorNotFound, "not found"},
	{common.ErrPersistence, "could not save your changes, please try again"},
}

// userMessage turns a service error into something fit for the prompt.
func userMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
