// Package notes is the storage collaborator for Note records.
package notes

import (
	"context"

	"github.com/dmitrijs2005/technotes/internal/server/models"
)

// Repository persists notes. A missing record is common.ErrorNotFound; a
// write naming an owner that does not exist is common.ErrorForeignKey.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Save(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Note, error)
	FindOneByOwner(ctx context.Context, owner string) (*models.Note, error)
	FindAll(ctx context.Context) ([]models.Note, error)
}
