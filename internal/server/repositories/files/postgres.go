package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akozinov/filedepot/internal/common"
	"github.com/akozinov/filedepot/internal/dbx"
	"github.com/akozinov/filedepot/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const fileColumns = `id, user_id, name, type, parent_id, is_public, local_path, created_at`

func scanFile(row interface{ Scan(dest ...any) error }) (*models.File, error) {
	var f models.File
	var localPath sql.NullString
	if err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Type, &f.ParentID, &f.IsPublic, &localPath, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.LocalPath = localPath.String
	return &f, nil
}

// Create inserts a record. The id and creation time are assigned by the
// database and written back into file.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (user_id, name, type, parent_id, is_public, local_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	localPath := sql.NullString{String: file.LocalPath, Valid: file.LocalPath != ""}

	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.Name, file.Type, file.ParentID, file.IsPublic, localPath).
		Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND user_id = $2`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByParent returns the page'th page (zero-based, PageSize records) of the
// owner's records under parentID, ordered by insertion.
func (r *PostgresRepository) ListByParent(ctx context.Context, userID, parentID string, page int) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files
		WHERE user_id = $1 AND parent_id = $2
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, userID, parentID, PageSize, page*PageSize)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetPublic flips the visibility flag in a single conditional UPDATE so no
// read-modify-write race is possible. Returns ErrorNotFound when no record
// matches both id and owner.
func (r *PostgresRepository) SetPublic(ctx context.Context, id, userID string, public bool) (*models.File, error) {
	query := `UPDATE files SET is_public = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + fileColumns

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id, userID, public))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
