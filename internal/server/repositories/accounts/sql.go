package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/dbx"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/google/uuid"
)

const table = "accounts"

var (
	summaryColumns = []string{"id", "username", "roles", "active", "created_at", "updated_at"}
	fullColumns    = []string{"id", "username", "credential_hash", "roles", "active", "created_at", "updated_at"}
)

// Seams for tests.
var (
	newID = uuid.NewString
	now   = func() time.Time { return time.Now().UTC() }
)

// SQLRepository implements Repository on top of database/sql. The same code
// serves Postgres and SQLite; only the placeholder format differs.
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

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	roles, err := json.Marshal(account.Roles)
	if err != nil {
		return nil, fmt.Errorf("encode roles: %w", err)
	}

	ts := now()
	id := newID()

	query, args, err := r.sb.Insert(table).
		Columns(fullColumns...).
		Values(id, account.Username, account.CredentialHash, string(roles), account.Active, ts, ts).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.ID = id
	account.CreatedAt = ts
	account.UpdatedAt = ts
	return account, nil
}

func (r *SQLRepository) Save(ctx context.Context, account *models.Account) error {
	roles, err := json.Marshal(account.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}

	ts := now()

	query, args, err := r.sb.Update(table).
		Set("username", account.Username).
		Set("credential_hash", account.CredentialHash).
		Set("roles", string(roles)).
		Set("active", account.Active).
		Set("updated_at", ts).
		Where(squirrel.Eq{"id": account.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	account.UpdatedAt = ts
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
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
	return expectOneRow(res)
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.findOne(ctx, squirrel.Eq{"username": username})
}

// FindAll returns every account in creation order, without credential hashes.
func (r *SQLRepository) FindAll(ctx context.Context) ([]models.AccountSummary, error) {
	query, args, err := r.sb.Select(summaryColumns...).
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

	result := make([]models.AccountSummary, 0)
	for rows.Next() {
		var (
			s     models.AccountSummary
			roles string
		)
		if err := rows.Scan(&s.ID, &s.Username, &roles, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal([]byte(roles), &s.Roles); err != nil {
			return nil, fmt.Errorf("decode roles: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) findOne(ctx context.Context, where squirrel.Eq) (*models.Account, error) {
	query, args, err := r.sb.Select(fullColumns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		a     models.Account
		roles string
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.Username, &a.CredentialHash, &roles, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal([]byte(roles), &a.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return &a, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
