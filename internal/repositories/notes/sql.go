package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: d}
}

func (r *SQLRepository) Create(ctx context.Context, n *models.Note) error {
	query := r.dialect.Rebind(`
		INSERT INTO notes (owner, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.QueryRowContext(ctx, query, n.Owner, n.Title, n.Content, n.CreatedAt, n.UpdatedAt).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, owner string, id int64) (*models.Note, error) {
	query := r.dialect.Rebind(`
		SELECT id, owner, title, content, created_at, updated_at
		FROM notes WHERE owner = ? AND id = ?`)

	var n models.Note
	err := r.db.QueryRowContext(ctx, query, owner, id).
		Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}
	return &n, nil
}

func (r *SQLRepository) List(ctx context.Context, owner string) ([]models.Note, error) {
	query := r.dialect.Rebind(`
		SELECT id, owner, title, content, created_at, updated_at
		FROM notes WHERE owner = ? ORDER BY id`)

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Owner, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate note rows: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Update(ctx context.Context, n *models.Note) error {
	query := r.dialect.Rebind(`
		UPDATE notes SET title = ?, content = ?, updated_at = ?
		WHERE owner = ? AND id = ?`)

	res, err := r.db.ExecContext(ctx, query, n.Title, n.Content, n.UpdatedAt, n.Owner, n.ID)
	if err != nil {
		return fmt.Errorf("failed to update note %d: %w", n.ID, err)
	}
	return requireOne(res, n.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, owner string, id int64) error {
	query := r.dialect.Rebind(`DELETE FROM notes WHERE owner = ? AND id = ?`)

	res, err := r.db.ExecContext(ctx, query, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return requireOne(res, id)
}

func requireOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("note %d: %w", id, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
