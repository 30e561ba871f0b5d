package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/google/uuid"
)

const table = "notes"

var columns = []string{"id", "owner", "title", "body", "completed", "created_at", "updated_at"}

// Seams for tests.
var (
	newID = uuid.NewString
	now   = func() time.Time { return time.Now().UTC() }
)

type SQLRepository struct {
	db dbx.DBTX
	sb squirrel.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, format squirrel.PlaceholderFormat) *SQLRepository {
	return &SQLRepository{db: db, sb: squirrel.StatementBuilder.PlaceholderFormat(format)}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, squirrel.Dollar)
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, squirrel.Question)
}

func (r *SQLRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	ts := now()
	id := newID()

	query, args, err := r.sb.Insert(table).
		Columns(columns...).
		Values(id, note.Owner, note.Title, note.Body, note.Completed, ts, ts).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorForeignKey
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	note.ID = id
	note.CreatedAt = ts
	note.UpdatedAt = ts
	return note, nil
}

// Save overwrites every mutable field of the note.
func (r *SQLRepository) Save(ctx context.Context, note *models.Note) error {
	ts := now()

	query, args, err := r.sb.Update(table).
		Set("owner", note.Owner).
		Set("title", note.Title).
		Set("body", note.Body).
		Set("completed", note.Completed).
		Set("updated_at", ts).
		Where(squirrel.Eq{"id": note.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorForeignKey
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	note.UpdatedAt = ts
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	return r.findOne(ctx, r.sb.Select(columns...).From(table).Where(squirrel.Eq{"id": id}))
}

// FindOneByOwner returns any one note owned by owner.
func (r *SQLRepository) FindOneByOwner(ctx context.Context, owner string) (*models.Note, error) {
	return r.findOne(ctx, r.sb.Select(columns...).From(table).Where(squirrel.Eq{"owner": owner}).Limit(1))
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]models.Note, error) {
	query, args, err := r.sb.Select(columns...).
		From(table).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Owner, &n.Title, &n.Body, &n.Completed, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) findOne(ctx context.Context, b squirrel.SelectBuilder) (*models.Note, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var n models.Note
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&n.ID, &n.Owner, &n.Title, &n.Body, &n.Completed, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &n, nil
}
