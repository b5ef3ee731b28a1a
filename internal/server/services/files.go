// Package services contains server-side business logic. This file implements
// FileService, which orchestrates the session cache, the metadata repository,
// and the content blob store to serve upload, retrieval, listing, visibility,
// and download operations.
package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/akozinov/filedepot/internal/common"
	"github.com/akozinov/filedepot/internal/logging"
	"github.com/akozinov/filedepot/internal/server/blob"
	"github.com/akozinov/filedepot/internal/server/models"
	"github.com/akozinov/filedepot/internal/server/repositories/repomanager"
	"github.com/akozinov/filedepot/internal/server/sessions"
	"github.com/google/uuid"
)

// DefaultContentType is returned when the file name's extension resolves to
// no known MIME type.
const DefaultContentType = "application/octet-stream"

// FileService implements the file resource operations with authorization and
// hierarchy checks.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Cache
	blobs       blob.Store
	logger      logging.Logger
}

// NewFileService constructs a FileService over the given collaborators.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, c sessions.Cache, b blob.Store, l logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		sessions:    c,
		blobs:       b,
		logger:      l.With("module", "file_service"),
	}
}

// UploadRequest carries the parameters of a create (upload) operation. Data
// is the base64-encoded payload, required iff Type is file or image.
type UploadRequest struct {
	Token    string
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string
}

// Content is a downloaded payload tagged with the MIME type resolved from
// the record's name.
type Content struct {
	Name     string
	MimeType string
	Data     []byte
}

// authorize resolves the token into a user id. A missing, unknown, or
// expired token yields ErrorUnauthorized before any database work.
func (s *FileService) authorize(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}
	return userID, nil
}

// parseID validates an externally supplied record id before it reaches the
// store, failing closed on malformed input.
func parseID(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", common.NewValidationError("Invalid id")
	}
	return id, nil
}

// Upload creates one file record. Folders are metadata-only; files and
// images have their decoded payload written to the blob store first and the
// record references the resulting blob. Validation failures are returned in
// order, first failure wins.
func (s *FileService) Upload(ctx context.Context, req *UploadRequest) (*models.File, error) {
	userID, err := s.authorize(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, common.NewValidationError("Missing name")
	}
	if !models.ValidType(req.Type) {
		return nil, common.NewValidationError("Missing type")
	}
	if (req.Type == models.TypeFile || req.Type == models.TypeImage) && req.Data == "" {
		return nil, common.NewValidationError("Missing data")
	}

	repo := s.repomanager.Files(s.db)

	parentID := req.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		if _, err := uuid.Parse(parentID); err != nil {
			return nil, common.NewValidationError("Parent not found")
		}
		parent, err := repo.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.NewValidationError("Parent not found")
			}
			return nil, err
		}
		if parent.Type != models.TypeFolder {
			return nil, common.NewValidationError("Parent is not a folder")
		}
	}

	file := &models.File{
		UserID:   userID,
		Name:     req.Name,
		Type:     req.Type,
		ParentID: parentID,
		IsPublic: req.IsPublic,
	}

	if req.Type == models.TypeFolder {
		return repo.Create(ctx, file)
	}

	payload, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, common.NewValidationError("Invalid data")
	}

	ref, err := s.blobs.Write(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("blob write: %w", err)
	}

	file.LocalPath = ref
	created, err := repo.Create(ctx, file)
	if err != nil {
		// The blob write and the metadata insert are not atomic. Reclaim
		// the orphaned blob so failed uploads do not leak disk space.
		if rmErr := s.blobs.Remove(ctx, ref); rmErr != nil {
			s.logger.Error(ctx, "orphaned blob cleanup failed", "ref", ref, "error", rmErr.Error())
		}
		return nil, err
	}
	return created, nil
}

// Get returns the record matching both id and the caller's user id. Records
// owned by other users are reported as ErrorNotFound.
func (s *FileService) Get(ctx context.Context, token, id string) (*models.File, error) {
	userID, err := s.authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	fileID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Files(s.db).GetByIDAndUser(ctx, fileID, userID)
}

// List returns one page (20 records) of the caller's records under parentID,
// in insertion order. The end of the listing shows as a short page.
func (s *FileService) List(ctx context.Context, token, parentID string, page int) ([]*models.File, error) {
	userID, err := s.authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, common.NewValidationError("Invalid page")
	}
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		if _, err := uuid.Parse(parentID); err != nil {
			return nil, common.NewValidationError("Invalid id")
		}
	}
	return s.repomanager.Files(s.db).ListByParent(ctx, userID, parentID, page)
}

// SetVisibility atomically updates isPublic on the caller's record and
// returns the post-update record. A wrong id or a record owned by someone
// else yields ErrorNotFound.
func (s *FileService) SetVisibility(ctx context.Context, token, id string, public bool) (*models.File, error) {
	userID, err := s.authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	fileID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Files(s.db).SetPublic(ctx, fileID, userID, public)
}

// Download returns the content of a record. Public records are served
// without authentication; private records require the caller to own them,
// with an ownership mismatch masked as ErrorNotFound. Folders carry no
// content and are rejected with ErrorFolderHasNoContent.
func (s *FileService) Download(ctx context.Context, token, id string) (*Content, error) {
	// Token absence is tolerated here; public files are served without it.
	var userID string
	if token != "" {
		uid, err := s.sessions.Resolve(ctx, token)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		userID = uid
	}

	fileID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	file, err := s.repomanager.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.IsPublic && (userID == "" || userID != file.UserID) {
		return nil, common.ErrorNotFound
	}
	if file.Type == models.TypeFolder {
		return nil, common.ErrorFolderHasNoContent
	}
	if file.LocalPath == "" {
		return nil, common.ErrorNotFound
	}

	data, err := s.blobs.Read(ctx, file.LocalPath)
	if err != nil {
		// The metadata record promised the blob exists, so a read failure
		// is an internal inconsistency, not a missing resource.
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &Content{
		Name:     file.Name,
		MimeType: contentTypeFor(file.Name),
		Data:     data,
	}, nil
}

// contentTypeFor resolves a MIME type purely from the name's extension.
func contentTypeFor(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return DefaultContentType
}
