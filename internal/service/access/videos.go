package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"filmroom/internal/config"
	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/repositories"
	"filmroom/internal/domain/services"
	"filmroom/internal/entitlements"
)

type videoService struct {
	videoRepo  repositories.VideoRepository
	folderRepo repositories.FolderRepository
	blobStore  repositories.BlobStore
	access     services.AccessService
	plans      *entitlements.Registry
	logger     *slog.Logger
}

// NewVideoService creates the video metadata service. It leans on the
// access service's verifier before every grantee write action.
func NewVideoService(
	videoRepo repositories.VideoRepository,
	folderRepo repositories.FolderRepository,
	blobStore repositories.BlobStore,
	access services.AccessService,
	plans *entitlements.Registry,
	logger *slog.Logger,
) services.VideoService {
	return &videoService{
		videoRepo:  videoRepo,
		folderRepo: folderRepo,
		blobStore:  blobStore,
		access:     access,
		plans:      plans,
		logger:     logger,
	}
}

// RegisterVideo records clip metadata and mints a presigned upload URL.
// Coaches need a fresh upload grant; the owner bypasses the check.
func (s *videoService) RegisterVideo(ctx context.Context, req *services.RegisterVideoRequest) (*services.RegisterVideoResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxVideoTitleLength)),
		validation.Field(&req.DurationSec, validation.Min(0)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.authorizeWrite(ctx, req.CallerID, req.FolderID, models.ActionUpload)
	if err != nil {
		return nil, err
	}

	// The per-folder clip cap binds to the owner's plan; coach uploads
	// are not gated by the coach's own subscription.
	if req.CallerID == folder.OwnerID && !s.plans.WithinVideoQuota(req.Plan, folder.VideoCount) {
		return nil, fmt.Errorf("plan %q video quota reached for folder %s: %w", req.Plan, folder.ID, domain.ErrEntitlementRequired)
	}

	key := fmt.Sprintf("videos/%s/%s.mp4", folder.ID, uuid.NewString())
	video := &models.Video{
		FolderID:    folder.ID,
		Title:       req.Title,
		StorageKey:  key,
		DurationSec: req.DurationSec,
		UploadedBy:  req.CallerID,
		CreatedAt:   time.Now(),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	// The cached count may lag; a failed bump is not worth failing the upload.
	if err := s.folderRepo.AdjustVideoCount(ctx, folder.ID, 1); err != nil {
		s.logger.Warn("video count bump failed", "folder_id", folder.ID, "error", err)
	}

	uploadURL, err := s.blobStore.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	s.logger.Info("video registered",
		"video_id", video.ID,
		"folder_id", folder.ID,
		"uploaded_by", req.CallerID,
	)

	return &services.RegisterVideoResult{Video: video, UploadURL: uploadURL}, nil
}

// ListVideos lists a folder's videos for an authorized caller.
func (s *videoService) ListVideos(ctx context.Context, callerID, folderID string) ([]models.Video, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !Authorize(callerID, models.ActionView, folder) {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrForbidden)
	}
	return s.videoRepo.ListByFolder(ctx, folderID)
}

// DeleteVideo deletes the binary, then the metadata record, then bumps
// the cached count. Unlike the folder cascade this is a single retryable
// operation, so remote failures surface to the caller as-is.
func (s *videoService) DeleteVideo(ctx context.Context, callerID, videoID string) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}

	if _, err := s.authorizeWrite(ctx, callerID, video.FolderID, models.ActionDelete); err != nil {
		return err
	}

	if err := s.blobStore.Delete(ctx, video.StorageKey); err != nil {
		return fmt.Errorf("delete binary: %w", err)
	}
	if video.ThumbnailKey != "" {
		if err := s.blobStore.Delete(ctx, video.ThumbnailKey); err != nil {
			s.logger.Warn("thumbnail delete failed", "video_id", videoID, "error", err)
		}
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	if err := s.folderRepo.AdjustVideoCount(ctx, video.FolderID, -1); err != nil {
		s.logger.Warn("video count decrement failed", "folder_id", video.FolderID, "error", err)
	}

	s.logger.Info("video deleted",
		"video_id", videoID,
		"folder_id", video.FolderID,
		"deleted_by", callerID,
	)

	return nil
}

// AddComment annotates a video. Empty text is rejected before any remote
// call.
func (s *videoService) AddComment(ctx context.Context, req *services.AddCommentRequest) (*models.Comment, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return nil, domain.ErrEmptyComment
	}
	if len(req.Text) > config.MaxCommentLength {
		return nil, fmt.Errorf("comment longer than %d characters: %w", config.MaxCommentLength, domain.ErrValidation)
	}

	video, err := s.videoRepo.GetByID(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorizeWrite(ctx, req.AuthorID, video.FolderID, models.ActionComment); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		VideoID:    video.ID,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Text:       req.Text,
		CreatedAt:  time.Now(),
	}
	if err := s.videoRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments lists a video's annotations for an authorized caller.
func (s *videoService) ListComments(ctx context.Context, callerID, videoID string) ([]models.Comment, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	folder, err := s.folderRepo.GetByID(ctx, video.FolderID)
	if err != nil {
		return nil, err
	}
	if !Authorize(callerID, models.ActionView, folder) {
		return nil, fmt.Errorf("video %s: %w", videoID, domain.ErrForbidden)
	}
	return s.videoRepo.ListComments(ctx, videoID)
}

// authorizeWrite loads fresh folder state for a write action. The owner
// is authorized unconditionally; everyone else goes through the
// consistency verifier first so a revoked grant cannot be exercised from
// a stale cache.
func (s *videoService) authorizeWrite(ctx context.Context, callerID, folderID string, action models.Action) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if callerID == folder.OwnerID {
		return folder, nil
	}

	folder, err = s.access.VerifyAccess(ctx, folderID, callerID)
	if err != nil {
		return nil, err
	}
	if !Authorize(callerID, action, folder) {
		return nil, fmt.Errorf("action %s on folder %s: %w", action, folderID, domain.ErrForbidden)
	}
	return folder, nil
}
