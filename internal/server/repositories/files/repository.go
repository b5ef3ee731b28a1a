// Package files persists file metadata records.
package files

import (
	"context"

	"github.com/akozinov/filedepot/internal/server/models"
)

// PageSize is the fixed number of records returned per listing page.
const PageSize = 20

type Repository interface {
	// Create inserts a new record and fills in the store-assigned id and
	// creation time.
	Create(ctx context.Context, file *models.File) (*models.File, error)

	// GetByID fetches a record by id regardless of owner.
	GetByID(ctx context.Context, id string) (*models.File, error)

	// GetByIDAndUser fetches a record matching both id and owner. A record
	// owned by someone else is indistinguishable from a missing one.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.File, error)

	// ListByParent returns one page of the owner's records under parentID,
	// in insertion order.
	ListByParent(ctx context.Context, userID, parentID string, page int) ([]*models.File, error)

	// SetPublic atomically updates the visibility flag of the record
	// matching both id and owner and returns the post-update record.
	SetPublic(ctx context.Context, id, userID string, public bool) (*models.File, error)

	// CountAll returns the total number of file records.
	CountAll(ctx context.Context) (int64, error)
}
