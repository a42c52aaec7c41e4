package repositories

import (
	"context"

	"filmroom/internal/domain/models"
)

// FolderRepository defines data access operations for shared folders.
//
// AddGrant and RemoveGrant mutate the grantee set and the permission map
// in a single statement so the set/map invariant holds after every write.
type FolderRepository interface {
	// Create persists a new folder and assigns its ID
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// ListByOwner retrieves all folders owned by the given athlete
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// ListByGrantee retrieves all folders shared with the given coach
	ListByGrantee(ctx context.Context, granteeID string) ([]models.Folder, error)

	// AddGrant inserts or replaces the coach's permission entry
	AddGrant(ctx context.Context, folderID, granteeID string, perm models.Permission) error

	// RemoveGrant removes the coach from the grantee set and permission map
	RemoveGrant(ctx context.Context, folderID, granteeID string) error

	// AdjustVideoCount shifts the cached video count by delta (floored at zero)
	AdjustVideoCount(ctx context.Context, folderID string, delta int) error

	// Delete removes the folder record
	Delete(ctx context.Context, id string) error
}
