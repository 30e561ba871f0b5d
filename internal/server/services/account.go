// Package services contains server-side business logic: the account and note
// managers shared by the REST and gRPC transports.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/cryptox"
	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/config"
	"github.com/dmitrijs2005/technotes/internal/server/events"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/repomanager"
)

const (
	msgAccountFieldsRequired = "All fields are required"
	msgAccountUpdateRequired = "All fields except password are required"
	msgAccountIDRequired     = "User ID Required"
	msgAccountNotFound       = "User not found"
	msgNoAccounts            = "No users found"
	msgDuplicateUsername     = "Duplicate username"
	msgAccountHasNotes       = "User has assigned notes"
	msgSecretTooLong         = "Password must be at most 72 bytes"
)

// CreateAccountInput carries the fields of Account.Create. Secret is the
// plaintext credential; it is hashed and never stored or echoed.
type CreateAccountInput struct {
	Username string
	Secret   []byte
	Roles    []string
}

// UpdateAccountInput is a full replace of the mutable account fields. Active
// must be set; an empty Secret leaves the stored credential untouched.
type UpdateAccountInput struct {
	ID       string
	Username string
	Roles    []string
	Active   *bool
	Secret   []byte
}

// AccountService manages the account lifecycle. Every mutation runs its
// checks and its write inside one transaction; the unique username index and
// the notes.owner foreign key settle races between concurrent requests.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   events.Publisher
	log         logging.Logger
	bcryptCost  int
	emptyListOK bool
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, l logging.Logger, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		publisher:   p,
		log:         l.With("module", "accounts"),
		bcryptCost:  cfg.BcryptCost,
		emptyListOK: cfg.EmptyListOK,
	}
}

// List returns every account without credential material.
func (s *AccountService) List(ctx context.Context) ([]models.AccountSummary, error) {
	list, err := s.repomanager.Accounts(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if len(list) == 0 && !s.emptyListOK {
		return nil, notFound(msgNoAccounts)
	}
	return list, nil
}

// Get returns one account without credential material.
func (s *AccountService) Get(ctx context.Context, id string) (*models.AccountSummary, error) {
	if id == "" {
		return nil, validation(msgAccountIDRequired)
	}
	acc, err := s.repomanager.Accounts(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, notFound(msgAccountNotFound)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	summary := acc.Summary()
	return &summary, nil
}

// Create registers a new inactive account.
func (s *AccountService) Create(ctx context.Context, in CreateAccountInput) (string, error) {
	if in.Username == "" || len(in.Secret) == 0 || !validRoles(in.Roles) {
		return "", validation(msgAccountFieldsRequired)
	}
	if len(in.Secret) > cryptox.MaxSecretLen {
		return "", validation(msgSecretTooLong)
	}

	hash, err := cryptox.HashSecret(in.Secret, s.bcryptCost)
	if err != nil {
		return "", err
	}

	var created *models.Account
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		if err := s.ensureUsernameFree(ctx, repo.FindByUsername, in.Username, ""); err != nil {
			return err
		}

		acc, err := repo.Create(ctx, &models.Account{
			Username:       in.Username,
			CredentialHash: hash,
			Roles:          in.Roles,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return duplicate(msgDuplicateUsername)
			}
			return fmt.Errorf("create account: %w", err)
		}
		created = acc
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "account created", "id", created.ID, "username", created.Username)
	s.publish(ctx, events.New(events.AccountCreated, created.ID, ""))
	return fmt.Sprintf("New user %s created", created.Username), nil
}

// Update replaces username, roles and active, and the credential when a new
// secret is supplied.
func (s *AccountService) Update(ctx context.Context, in UpdateAccountInput) (string, error) {
	if in.ID == "" || in.Username == "" || !validRoles(in.Roles) || in.Active == nil {
		return "", validation(msgAccountUpdateRequired)
	}
	if len(in.Secret) > cryptox.MaxSecretLen {
		return "", validation(msgSecretTooLong)
	}

	var hash string
	if len(in.Secret) > 0 {
		h, err := cryptox.HashSecret(in.Secret, s.bcryptCost)
		if err != nil {
			return "", err
		}
		hash = h
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		acc, err := repo.FindByID(ctx, in.ID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return notFound(msgAccountNotFound)
			}
			return fmt.Errorf("find account: %w", err)
		}

		if err := s.ensureUsernameFree(ctx, repo.FindByUsername, in.Username, acc.ID); err != nil {
			return err
		}

		acc.Username = in.Username
		acc.Roles = in.Roles
		acc.Active = *in.Active
		if hash != "" {
			acc.CredentialHash = hash
		}

		if err := repo.Save(ctx, acc); err != nil {
			switch {
			case errors.Is(err, common.ErrorAlreadyExists):
				return duplicate(msgDuplicateUsername)
			case errors.Is(err, common.ErrorNotFound):
				return notFound(msgAccountNotFound)
			}
			return fmt.Errorf("save account: %w", err)
		}
		updated = acc
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "account updated", "id", updated.ID, "username", updated.Username)
	s.publish(ctx, events.New(events.AccountUpdated, updated.ID, ""))
	return fmt.Sprintf("%s updated", updated.Username), nil
}

// Delete removes an account that owns no notes.
func (s *AccountService) Delete(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", validation(msgAccountIDRequired)
	}

	var deleted *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Notes(tx).FindOneByOwner(ctx, id)
		switch {
		case err == nil:
			return dependents(msgAccountHasNotes)
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("find owned note: %w", err)
		}

		repo := s.repomanager.Accounts(tx)
		acc, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return notFound(msgAccountNotFound)
			}
			return fmt.Errorf("find account: %w", err)
		}

		if err := repo.Delete(ctx, id); err != nil {
			switch {
			case errors.Is(err, common.ErrorForeignKey):
				return dependents(msgAccountHasNotes)
			case errors.Is(err, common.ErrorNotFound):
				return notFound(msgAccountNotFound)
			}
			return fmt.Errorf("delete account: %w", err)
		}
		deleted = acc
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "account deleted", "id", deleted.ID, "username", deleted.Username)
	s.publish(ctx, events.New(events.AccountDeleted, deleted.ID, ""))
	return fmt.Sprintf("Username %s with ID %s deleted", deleted.Username, deleted.ID), nil
}

// ensureUsernameFree fails with a conflict when username belongs to an
// account other than selfID.
func (s *AccountService) ensureUsernameFree(ctx context.Context,
	find func(context.Context, string) (*models.Account, error), username, selfID string) error {

	other, err := find(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("find account by username: %w", err)
	}
	if other.ID != selfID {
		return duplicate(msgDuplicateUsername)
	}
	return nil
}

// validRoles reports whether roles is non-empty with no blank entries.
func validRoles(roles []string) bool {
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if strings.TrimSpace(r) == "" {
			return false
		}
	}
	return true
}

func (s *AccountService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn(ctx, "event not published", "type", e.Type, "id", e.ResourceID, "error", err)
	}
}
