package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/repositories"
)

// PostgresVideoRepository implements the VideoRepository interface
type PostgresVideoRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(config *RepositoryConfig) repositories.VideoRepository {
	return &PostgresVideoRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new video metadata record and assigns its ID
func (r *PostgresVideoRepository) Create(ctx context.Context, video *models.Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, title, storage_key, thumbnail_key, duration_sec, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.Videos)

	err := r.pool.QueryRow(ctx, query,
		video.FolderID,
		video.Title,
		video.StorageKey,
		video.ThumbnailKey,
		video.DurationSec,
		video.UploadedBy,
		video.CreatedAt,
	).Scan(&video.ID, &video.CreatedAt)

	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by ID
func (r *PostgresVideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, title, storage_key, thumbnail_key, duration_sec, uploaded_by, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Videos)

	var video models.Video
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&video.ID,
		&video.FolderID,
		&video.Title,
		&video.StorageKey,
		&video.ThumbnailKey,
		&video.DurationSec,
		&video.UploadedBy,
		&video.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	return &video, nil
}

// ListByFolder retrieves all videos in a folder, newest first
func (r *PostgresVideoRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Video, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, title, storage_key, thumbnail_key, duration_sec, uploaded_by, created_at
		FROM %s
		WHERE folder_id = $1
		ORDER BY created_at DESC
	`, r.tables.Videos)

	rows, err := r.pool.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var video models.Video
		err := rows.Scan(
			&video.ID,
			&video.FolderID,
			&video.Title,
			&video.StorageKey,
			&video.ThumbnailKey,
			&video.DurationSec,
			&video.UploadedBy,
			&video.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

// Delete removes a video metadata record (comments cascade via FK)
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Videos)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddComment persists an annotation and assigns its ID
func (r *PostgresVideoRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (video_id, author_id, author_name, text_body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Comments)

	err := r.pool.QueryRow(ctx, query,
		comment.VideoID,
		comment.AuthorID,
		comment.AuthorName,
		comment.Text,
		comment.CreatedAt,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}

	return nil
}

// ListComments retrieves all comments on a video, oldest first
func (r *PostgresVideoRepository) ListComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, video_id, author_id, author_name, text_body, created_at
		FROM %s
		WHERE video_id = $1
		ORDER BY created_at ASC
	`, r.tables.Comments)

	rows, err := r.pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.VideoID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}
