package repositories

import (
	"context"

	"filmroom/internal/domain/models"
)

// VideoRepository defines data access operations for video metadata and
// comments.
type VideoRepository interface {
	// Create persists a new video metadata record and assigns its ID
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves a video by ID
	GetByID(ctx context.Context, id string) (*models.Video, error)

	// ListByFolder retrieves all videos in a folder
	ListByFolder(ctx context.Context, folderID string) ([]models.Video, error)

	// Delete removes a video metadata record
	Delete(ctx context.Context, id string) error

	// AddComment persists an annotation and assigns its ID
	AddComment(ctx context.Context, comment *models.Comment) error

	// ListComments retrieves all comments on a video, oldest first
	ListComments(ctx context.Context, videoID string) ([]models.Comment, error)
}
