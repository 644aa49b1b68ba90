// Package repomanager opens the configured database, applies the embedded
// migrations and vends repositories bound to either the pool or a
// transaction.
package repomanager

import (
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/coins"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/metadata"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/transactions"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/users"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/watchlist"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	Users(db dbx.DBTX) users.Repository
	Coins(db dbx.DBTX) coins.Repository
	Watchlist(db dbx.DBTX) watchlist.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Notes(db dbx.DBTX) notes.Repository
	Metadata(db dbx.DBTX) metadata.Repository
}

// SQLRepositoryManager vends the database/sql backed repositories for one
// dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(d dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect { return m.dialect }

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Coins(db dbx.DBTX) coins.Repository {
	return coins.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Watchlist(db dbx.DBTX) watchlist.Repository {
	return watchlist.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLRepository(db, m.dialect)
}
