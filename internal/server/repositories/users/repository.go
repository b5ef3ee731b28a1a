// Package users persists user identity records.
package users

import (
	"context"

	"github.com/akozinov/filedepot/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and fills in the store-assigned id and
	// creation time.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail fetches a user by email (case-sensitive, unique).
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID fetches a user by id.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// CountAll returns the total number of users.
	CountAll(ctx context.Context) (int64, error)
}
