// Package accounts is the storage collaborator for Account records.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/technotes/internal/server/models"
)

// Repository persists accounts. Implementations report a missing record as
// common.ErrorNotFound, a username clash as common.ErrorAlreadyExists and a
// delete blocked by owned notes as common.ErrorForeignKey.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindAll(ctx context.Context) ([]models.AccountSummary, error)
}
