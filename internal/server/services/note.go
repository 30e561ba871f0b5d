package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/config"
	"github.com/dmitrijs2005/technotes/internal/server/events"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

const (
	msgNoteFieldsRequired = "All fields are required"
	msgNoteIDRequired     = "Note ID required"
	msgNoteNotFound       = "Note not found"
	msgOwnerNotFound      = "Owner not found"
	msgNoNotes            = "No notes found"
)

type CreateNoteInput struct {
	Owner string
	Title string
	Body  string
}

// UpdateNoteInput overwrites every mutable note field. Completed must be set.
type UpdateNoteInput struct {
	ID        string
	Owner     string
	Title     string
	Body      string
	Completed *bool
}

// AccountReader resolves an account id to its summary. AccountService
// implements it.
type AccountReader interface {
	Get(ctx context.Context, id string) (*models.AccountSummary, error)
}

// NoteService manages the note lifecycle and enriches notes with their
// owner's username.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	accounts    AccountReader
	publisher   events.Publisher
	log         logging.Logger
	emptyListOK bool
	concurrency int
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, accounts AccountReader, p events.Publisher, l logging.Logger, cfg *config.Config) *NoteService {
	concurrency := cfg.EnrichConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &NoteService{
		db:          db,
		repomanager: m,
		accounts:    accounts,
		publisher:   p,
		log:         l.With("module", "notes"),
		emptyListOK: cfg.EmptyListOK,
		concurrency: concurrency,
	}
}

// List returns all notes in storage order, each with its owner's username.
// Owner lookups run concurrently; a missing owner yields an empty username.
func (s *NoteService) List(ctx context.Context) ([]models.NoteView, error) {
	notes, err := s.repomanager.Notes(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 && !s.emptyListOK {
		return nil, notFound(msgNoNotes)
	}

	views := make([]models.NoteView, len(notes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range notes {
		g.Go(func() error {
			username, err := s.ownerName(gctx, notes[i].Owner)
			if err != nil {
				return err
			}
			views[i] = models.NoteView{Note: notes[i], Username: username}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// Get returns one enriched note.
func (s *NoteService) Get(ctx context.Context, id string) (*models.NoteView, error) {
	if id == "" {
		return nil, validation(msgNoteIDRequired)
	}
	note, err := s.repomanager.Notes(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, notFound(msgNoteNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	username, err := s.ownerName(ctx, note.Owner)
	if err != nil {
		return nil, err
	}
	return &models.NoteView{Note: *note, Username: username}, nil
}

// Create stores a new note for an existing owner.
func (s *NoteService) Create(ctx context.Context, in CreateNoteInput) (string, error) {
	if in.Owner == "" || in.Title == "" || in.Body == "" {
		return "", validation(msgNoteFieldsRequired)
	}

	var created *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.ensureOwner(ctx, tx, in.Owner); err != nil {
			return err
		}

		n, err := s.repomanager.Notes(tx).Create(ctx, &models.Note{Owner: in.Owner, Title: in.Title, Body: in.Body})
		if err != nil {
			if errors.Is(err, common.ErrorForeignKey) {
				return notFound(msgOwnerNotFound)
			}
			return fmt.Errorf("create note: %w", err)
		}
		created = n
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "note created", "id", created.ID, "owner", created.Owner)
	s.publish(ctx, events.New(events.NoteCreated, created.ID, created.Owner))
	return "New note created", nil
}

// Update overwrites owner, title, body and completed.
func (s *NoteService) Update(ctx context.Context, in UpdateNoteInput) (string, error) {
	if in.ID == "" || in.Owner == "" || in.Title == "" || in.Body == "" || in.Completed == nil {
		return "", validation(msgNoteFieldsRequired)
	}

	var updated *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		n, err := repo.FindByID(ctx, in.ID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return notFound(msgNoteNotFound)
			}
			return fmt.Errorf("find note: %w", err)
		}

		if err := s.ensureOwner(ctx, tx, in.Owner); err != nil {
			return err
		}

		n.Owner = in.Owner
		n.Title = in.Title
		n.Body = in.Body
		n.Completed = *in.Completed

		if err := repo.Save(ctx, n); err != nil {
			switch {
			case errors.Is(err, common.ErrorForeignKey):
				return notFound(msgOwnerNotFound)
			case errors.Is(err, common.ErrorNotFound):
				return notFound(msgNoteNotFound)
			}
			return fmt.Errorf("save note: %w", err)
		}
		updated = n
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "note updated", "id", updated.ID, "owner", updated.Owner)
	s.publish(ctx, events.New(events.NoteUpdated, updated.ID, updated.Owner))
	return fmt.Sprintf("Note for %s updated", updated.Owner), nil
}

func (s *NoteService) Delete(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", validation(msgNoteIDRequired)
	}

	var deleted *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		n, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return notFound(msgNoteNotFound)
			}
			return fmt.Errorf("find note: %w", err)
		}

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return notFound(msgNoteNotFound)
			}
			return fmt.Errorf("delete note: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "note deleted", "id", deleted.ID)
	s.publish(ctx, events.New(events.NoteDeleted, deleted.ID, deleted.Owner))
	return fmt.Sprintf("Note %s deleted", deleted.ID), nil
}

func (s *NoteService) ensureOwner(ctx context.Context, tx dbx.DBTX, owner string) error {
	if _, err := s.repomanager.Accounts(tx).FindByID(ctx, owner); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound(msgOwnerNotFound)
		}
		return fmt.Errorf("find owner: %w", err)
	}
	return nil
}

// ownerName maps a missing owner to "" and fails on any other lookup error.
func (s *NoteService) ownerName(ctx context.Context, owner string) (string, error) {
	acc, err := s.accounts.Get(ctx, owner)
	if err != nil {
		var nf *NotFoundError
		var ve *ValidationError
		if errors.As(err, &nf) || errors.As(err, &ve) {
			s.log.Warn(ctx, "note owner not resolved", "owner", owner)
			return "", nil
		}
		return "", err
	}
	return acc.Username, nil
}

func (s *NoteService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn(ctx, "event not published", "type", e.Type, "id", e.ResourceID, "error", err)
	}
}
