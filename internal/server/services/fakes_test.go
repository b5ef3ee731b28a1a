package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akozinov/filedepot/internal/common"
	"github.com/akozinov/filedepot/internal/dbx"
	"github.com/akozinov/filedepot/internal/logging"
	"github.com/akozinov/filedepot/internal/server/models"
	filesrepo "github.com/akozinov/filedepot/internal/server/repositories/files"
	usersrepo "github.com/akozinov/filedepot/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newTestLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- file metadata repository fake ---

type fakeFilesRepo struct {
	records   []*models.File
	createErr error
}

func (r *fakeFilesRepo) Create(ctx context.Context, f *models.File) (*models.File, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *f
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.records = append(r.records, &stored)
	out := stored
	return &out, nil
}

func (r *fakeFilesRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	for _, f := range r.records {
		if f.ID == id {
			out := *f
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeFilesRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.File, error) {
	for _, f := range r.records {
		if f.ID == id && f.UserID == userID {
			out := *f
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeFilesRepo) ListByParent(ctx context.Context, userID, parentID string, page int) ([]*models.File, error) {
	matched := []*models.File{}
	for _, f := range r.records {
		if f.UserID == userID && f.ParentID == parentID {
			out := *f
			matched = append(matched, &out)
		}
	}
	start := page * filesrepo.PageSize
	if start >= len(matched) {
		return []*models.File{}, nil
	}
	end := start + filesrepo.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *fakeFilesRepo) SetPublic(ctx context.Context, id, userID string, public bool) (*models.File, error) {
	for _, f := range r.records {
		if f.ID == id && f.UserID == userID {
			f.IsPublic = public
			out := *f
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeFilesRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

// --- users repository fake ---

type fakeUsersRepo struct {
	users     []*models.User
	createErr error
}

func (r *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.users = append(r.users, &stored)
	out := stored
	return &out, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// --- repository manager fake ---

type fakeRepoManager struct {
	files *fakeFilesRepo
	users *fakeUsersRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{files: &fakeFilesRepo{}, users: &fakeUsersRepo{}}
}

func (m *fakeRepoManager) Files(db dbx.DBTX) filesrepo.Repository              { return m.files }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository              { return m.users }
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

// --- session cache fake ---

type fakeSessions struct {
	tokens     map[string]string
	resolveErr error
	pingErr    error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]string{}}
}

func (c *fakeSessions) Resolve(ctx context.Context, token string) (string, error) {
	if c.resolveErr != nil {
		return "", c.resolveErr
	}
	userID, ok := c.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	return userID, nil
}

func (c *fakeSessions) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	c.tokens[token] = userID
	return nil
}

func (c *fakeSessions) Delete(ctx context.Context, token string) error {
	delete(c.tokens, token)
	return nil
}

func (c *fakeSessions) Ping(ctx context.Context) error { return c.pingErr }

// --- blob store fake ---

type fakeBlob struct {
	blobs    map[string][]byte
	writes   int
	removed  []string
	writeErr error
	readErr  error
	remErr   error
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{blobs: map[string][]byte{}}
}

func (b *fakeBlob) Write(ctx context.Context, data []byte) (string, error) {
	if b.writeErr != nil {
		return "", b.writeErr
	}
	b.writes++
	ref := fmt.Sprintf("/blobs/%s", uuid.NewString())
	b.blobs[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (b *fakeBlob) Read(ctx context.Context, ref string) ([]byte, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}
	data, ok := b.blobs[ref]
	if !ok {
		return nil, fmt.Errorf("read blob: no such blob %s", ref)
	}
	return data, nil
}

func (b *fakeBlob) Remove(ctx context.Context, ref string) error {
	if b.remErr != nil {
		return b.remErr
	}
	b.removed = append(b.removed, ref)
	delete(b.blobs, ref)
	return nil
}
