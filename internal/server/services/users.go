package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akozinov/filedepot/internal/common"
	"github.com/akozinov/filedepot/internal/dbx"
	"github.com/akozinov/filedepot/internal/server/models"
	"github.com/akozinov/filedepot/internal/server/repositories/repomanager"
	"github.com/akozinov/filedepot/internal/server/sessions"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration and the session lifecycle: login mints an
// opaque token bound to the user in the session cache, logout destroys it.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Cache
	sessionTTL  time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, c sessions.Cache, sessionTTL time.Duration) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessions:    c,
		sessionTTL:  sessionTTL,
	}
}

// Register creates a new user. The duplicate check and the insert run inside
// one transaction so concurrent registrations of the same email cannot both
// succeed.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, common.NewValidationError("Missing email")
	}
	if password == "" {
		return nil, common.NewValidationError("Missing password")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user := &models.User{Email: email, PasswordHash: string(digest)}
		created, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and mints a session token. Unknown emails
// and wrong passwords are both reported as ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Logout destroys the session bound to the token.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrorUnauthorized
	}
	if _, err := s.sessions.Resolve(ctx, token); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return err
	}
	return s.sessions.Delete(ctx, token)
}

// Me returns the user bound to the token.
func (s *UserService) Me(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return user, nil
}
