package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/portfolio"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
	"github.com/shopspring/decimal"
)

// LedgerService records signed transactions and folds them into holdings.
// Positive value and quantity are a buy, negative ones a sell.
type LedgerService interface {
	// Record stores the row as given; signs are not validated.
	Record(ctx context.Context, s *session.Session, ticker, name string, value, qty decimal.Decimal) (*models.Transaction, error)
	// RecordChecked refuses a row that would take the ticker's net quantity
	// below zero (common.ErrInsufficientHoldings). The check and the insert
	// share one transaction.
	RecordChecked(ctx context.Context, s *session.Session, ticker, name string, value, qty decimal.Decimal) (*models.Transaction, error)
	Buy(ctx context.Context, s *session.Session, coin string, value, qty decimal.Decimal) (*models.Transaction, error)
	Sell(ctx context.Context, s *session.Session, coin string, value, qty decimal.Decimal) (*models.Transaction, error)
	Aggregate(ctx context.Context, s *session.Session) (map[string]models.Holding, error)
	History(ctx context.Context, s *session.Session) ([]models.Transaction, error)
}

type ledgerService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	resolver CoinResolver
	now      func() time.Time
	log      logging.Logger
}

func NewLedgerService(db *sql.DB, rm repomanager.RepositoryManager, resolver CoinResolver, log logging.Logger) LedgerService {
	return &ledgerService{db: db, rm: rm, resolver: resolver, now: time.Now, log: log.With("service", "ledger")}
}

func (l *ledgerService) newTransaction(owner, ticker string, value, qty decimal.Decimal) *models.Transaction {
	return &models.Transaction{
		Owner:     owner,
		Ticker:    ticker,
		Value:     value,
		Quantity:  qty,
		CreatedAt: l.now().UTC(),
	}
}

func (l *ledgerService) Record(ctx context.Context, s *session.Session, ticker, name string, value, qty decimal.Decimal) (*models.Transaction, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, common.ErrEmptyInput
	}

	t := l.newTransaction(s.Username, ticker, value, qty)
	err := dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := l.rm.Coins(tx).Ensure(ctx, ticker, name); err != nil {
			return err
		}
		return l.rm.Transactions(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, persistErr("record transaction", err)
	}

	l.log.Info(ctx, "transaction recorded", "user", s.Username, "ticker", ticker, "value", value, "qty", qty)
	return t, nil
}

func (l *ledgerService) RecordChecked(ctx context.Context, s *session.Session, ticker, name string, value, qty decimal.Decimal) (*models.Transaction, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, common.ErrEmptyInput
	}

	t := l.newTransaction(s.Username, ticker, value, qty)
	err := dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := l.rm.Dialect().LockOwner(ctx, tx, s.Username); err != nil {
			return err
		}
		existing, err := l.rm.Transactions(tx).ListByOwnerTicker(ctx, s.Username, ticker)
		if err != nil {
			return err
		}
		held := portfolio.Aggregate(existing)[ticker].Quantity
		if held.Add(qty).IsNegative() {
			return fmt.Errorf("%w: %s holds %s, change %s", common.ErrInsufficientHoldings, ticker, held, qty)
		}
		if err := l.rm.Coins(tx).Ensure(ctx, ticker, name); err != nil {
			return err
		}
		return l.rm.Transactions(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, persistErr("record transaction", err)
	}

	l.log.Info(ctx, "transaction recorded", "user", s.Username, "ticker", ticker, "value", value, "qty", qty, "checked", true)
	return t, nil
}

func positive(value, qty decimal.Decimal) error {
	if !value.IsPositive() || !qty.IsPositive() {
		return common.ErrInvalidAmount
	}
	return nil
}

// Buy resolves coin to a ticker and records a positive row.
func (l *ledgerService) Buy(ctx context.Context, s *session.Session, coin string, value, qty decimal.Decimal) (*models.Transaction, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	if err := positive(value, qty); err != nil {
		return nil, err
	}
	ticker, err := l.resolver.ResolveCoin(ctx, coin)
	if err != nil {
		return nil, err
	}
	return l.Record(ctx, s, ticker, "", value, qty)
}

// Sell takes positive amounts and records them negated, refusing to sell
// more than is held.
func (l *ledgerService) Sell(ctx context.Context, s *session.Session, coin string, value, qty decimal.Decimal) (*models.Transaction, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	if err := positive(value, qty); err != nil {
		return nil, err
	}
	ticker, err := l.resolver.ResolveCoin(ctx, coin)
	if err != nil {
		return nil, err
	}
	return l.RecordChecked(ctx, s, ticker, "", value.Neg(), qty.Neg())
}

func (l *ledgerService) Aggregate(ctx context.Context, s *session.Session) (map[string]models.Holding, error) {
	txs, err := l.History(ctx, s)
	if err != nil {
		return nil, err
	}
	return portfolio.Aggregate(txs), nil
}

func (l *ledgerService) History(ctx context.Context, s *session.Session) ([]models.Transaction, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	txs, err := l.rm.Transactions(l.db).ListByOwner(ctx, s.Username)
	if err != nil {
		return nil, persistErr("list transactions", err)
	}
	return txs, nil
}
