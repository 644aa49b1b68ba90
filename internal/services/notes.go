package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
	"github.com/dmitrijs2005/coinkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/session"
)

type NoteService interface {
	Create(ctx context.Context, s *session.Session, title, content string) (*models.Note, error)
	List(ctx context.Context, s *session.Session) ([]models.Note, error)
	Get(ctx context.Context, s *session.Session, id int64) (*models.Note, error)
	Update(ctx context.Context, s *session.Session, id int64, title, content string) (*models.Note, error)
	Delete(ctx context.Context, s *session.Session, id int64) error
}

type noteService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	now func() time.Time
	log logging.Logger
}

func NewNoteService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) NoteService {
	return &noteService{db: db, rm: rm, now: time.Now, log: log.With("service", "notes")}
}

func (n *noteService) Create(ctx context.Context, s *session.Session, title, content string) (*models.Note, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrEmptyInput
	}

	now := n.now().UTC()
	note := &models.Note{
		Owner:     s.Username,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.rm.Notes(n.db).Create(ctx, note); err != nil {
		return nil, persistErr("create note", err)
	}
	n.log.Debug(ctx, "note created", "user", s.Username, "id", note.ID)
	return note, nil
}

func (n *noteService) List(ctx context.Context, s *session.Session) ([]models.Note, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	notes, err := n.rm.Notes(n.db).List(ctx, s.Username)
	if err != nil {
		return nil, persistErr("list notes", err)
	}
	return notes, nil
}

func (n *noteService) Get(ctx context.Context, s *session.Session, id int64) (*models.Note, error) {
	if err := session.Require(s); err != nil {
		return nil, err
	}
	note, err := n.rm.Notes(n.db).Get(ctx, s.Username, id)
	if err != nil {
		return nil, persistErr("get note", err)
	}
	return note, nil
}

func (n *noteService) Update(ctx context.Context, s *session.Session, id int64, title, content string) (*models.Note, error) {
	note, err := n.Get(ctx, s, id)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrEmptyInput
	}

	note.Title = title
	note.Content = content
	note.UpdatedAt = n.now().UTC()
	if err := n.rm.Notes(n.db).Update(ctx, note); err != nil {
		return nil, persistErr("update note", err)
	}
	return note, nil
}

func (n *noteService) Delete(ctx context.Context, s *session.Session, id int64) error {
	if err := session.Require(s); err != nil {
		return err
	}
	return persistErr("delete note", n.rm.Notes(n.db).Delete(ctx, s.Username, id))
}
