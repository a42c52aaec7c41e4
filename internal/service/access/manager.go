// Package access implements the shared-folder access control core:
// folder lifecycle, invitations, permission checks, revocation, the
// deletion cascade and the consistency verifier.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"filmroom/internal/config"
	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/repositories"
	"filmroom/internal/domain/services"
	"filmroom/internal/entitlements"
)

type accessService struct {
	folderRepo repositories.FolderRepository
	inviteRepo repositories.InvitationRepository
	videoRepo  repositories.VideoRepository
	blobStore  repositories.BlobStore
	plans      *entitlements.Registry
	notifier   services.Notifier
	cache      *folderCache
	logger     *slog.Logger
}

// NewAccessService creates the access control manager with its remote
// store gateways as explicit dependencies.
func NewAccessService(
	folderRepo repositories.FolderRepository,
	inviteRepo repositories.InvitationRepository,
	videoRepo repositories.VideoRepository,
	blobStore repositories.BlobStore,
	plans *entitlements.Registry,
	notifier services.Notifier,
	logger *slog.Logger,
) services.AccessService {
	return &accessService{
		folderRepo: folderRepo,
		inviteRepo: inviteRepo,
		videoRepo:  videoRepo,
		blobStore:  blobStore,
		plans:      plans,
		notifier:   notifier,
		cache:      newFolderCache(),
		logger:     logger,
	}
}

// CreateFolder creates a shared folder. The entitlement gate runs before
// any remote call: shared folders are a paid feature.
func (s *accessService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxFolderNameLength)),
		validation.Field(&req.OwnerID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !s.plans.CanCreateSharedFolders(req.Plan) {
		return nil, fmt.Errorf("plan %q does not include shared folders: %w", req.Plan, domain.ErrEntitlementRequired)
	}

	owned, err := s.folderRepo.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("check folder quota: %w", err)
	}
	if !s.plans.WithinFolderQuota(req.Plan, len(owned)) {
		return nil, fmt.Errorf("plan %q folder quota reached: %w", req.Plan, domain.ErrEntitlementRequired)
	}

	now := time.Now()
	folder := &models.Folder{
		Name:        req.Name,
		OwnerID:     req.OwnerID,
		OwnerName:   req.OwnerName,
		GranteeIDs:  []string{},
		Permissions: map[string]models.Permission{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.republish(ctx, req.OwnerID)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", folder.OwnerID,
	)

	return folder, nil
}

// GetFolder retrieves a folder the caller is allowed to view.
func (s *accessService) GetFolder(ctx context.Context, callerID, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !Authorize(callerID, models.ActionView, folder) {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrForbidden)
	}
	return folder, nil
}

// ListFolders returns the caller's owned and shared folders, serving from
// the in-memory cache when one is published.
func (s *accessService) ListFolders(ctx context.Context, callerID string) (*services.FolderList, error) {
	if callerID == "" {
		return nil, fmt.Errorf("empty caller: %w", domain.ErrValidation)
	}
	if cached := s.cache.get(callerID); cached != nil {
		return cached, nil
	}
	return s.fetchAndPublish(ctx, callerID)
}

// RevokeAccess removes a coach's grant. The invitation record that
// produced the grant stays untouched: invitations are an audit log, not a
// live authorization source after acceptance.
func (s *accessService) RevokeAccess(ctx context.Context, ownerID, granteeID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return err
	}
	if folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrForbidden)
	}

	if err := s.folderRepo.RemoveGrant(ctx, folderID, granteeID); err != nil {
		return err
	}

	// Notification delivery is not part of the correctness contract.
	if err := s.notifier.AccessRevoked(ctx, granteeID, folder.Name); err != nil {
		s.logger.Warn("revocation notification failed",
			"grantee_id", granteeID,
			"folder_id", folderID,
			"error", err,
		)
	}

	s.cache.invalidate(granteeID)
	s.republish(ctx, ownerID)

	s.logger.Info("access revoked",
		"folder_id", folderID,
		"grantee_id", granteeID,
	)

	return nil
}

// DeleteFolder runs the best-effort deletion cascade. Per-item failures
// in the revoke and video steps are logged and skipped: one unreachable
// coach or one missing binary must not block the owner from deleting the
// folder. The folder record itself is deleted strictly last, so a partial
// failure can orphan metadata or binaries (recoverable by a GC sweep) but
// never a visible folder.
func (s *accessService) DeleteFolder(ctx context.Context, folderID, ownerID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return err
	}
	if folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrForbidden)
	}

	s.revokeAllGrants(ctx, folder)
	s.deleteAllVideos(ctx, folder)

	if err := s.folderRepo.Delete(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder record: %w", err)
	}

	s.republish(ctx, ownerID)

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"owner_id", ownerID,
	)

	return nil
}

// revokeAllGrants removes every grantee with bounded fan-out,
// continuing past per-grantee failures.
func (s *accessService) revokeAllGrants(ctx context.Context, folder *models.Folder) {
	g := new(errgroup.Group)
	g.SetLimit(config.CascadeWorkers)

	for _, granteeID := range folder.GranteeIDs {
		g.Go(func() error {
			if err := s.folderRepo.RemoveGrant(ctx, folder.ID, granteeID); err != nil {
				s.logger.Error("cascade: revoke failed",
					"folder_id", folder.ID,
					"grantee_id", granteeID,
					"error", err,
				)
				return nil
			}
			if err := s.notifier.FolderDeleted(ctx, granteeID, folder.Name); err != nil {
				s.logger.Warn("cascade: deletion notification failed",
					"grantee_id", granteeID,
					"error", err,
				)
			}
			s.cache.invalidate(granteeID)
			return nil
		})
	}
	_ = g.Wait()
}

// deleteAllVideos deletes binaries before metadata with bounded fan-out,
// continuing past per-video failures. The metadata delete is attempted
// even when the binary delete failed; the orphan is logged for a later
// sweep rather than left invisible.
func (s *accessService) deleteAllVideos(ctx context.Context, folder *models.Folder) {
	videos, err := s.videoRepo.ListByFolder(ctx, folder.ID)
	if err != nil {
		s.logger.Error("cascade: list videos failed, skipping video cleanup",
			"folder_id", folder.ID,
			"error", err,
		)
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(config.CascadeWorkers)

	for _, video := range videos {
		g.Go(func() error {
			if err := s.blobStore.Delete(ctx, video.StorageKey); err != nil {
				s.logger.Error("cascade: binary delete failed, orphan candidate",
					"video_id", video.ID,
					"storage_key", video.StorageKey,
					"error", err,
				)
			}
			if video.ThumbnailKey != "" {
				if err := s.blobStore.Delete(ctx, video.ThumbnailKey); err != nil {
					s.logger.Warn("cascade: thumbnail delete failed",
						"video_id", video.ID,
						"thumbnail_key", video.ThumbnailKey,
						"error", err,
					)
				}
			}
			if err := s.videoRepo.Delete(ctx, video.ID); err != nil {
				s.logger.Error("cascade: metadata delete failed, orphan candidate",
					"video_id", video.ID,
					"folder_id", folder.ID,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// VerifyAccess re-fetches the authoritative folder record and confirms
// the grant still exists. This is the only resynchronization mechanism
// for a client holding a stale permission view; it must be called before
// any write action a coach performs when staleness risk is non-trivial.
func (s *accessService) VerifyAccess(ctx context.Context, folderID, granteeID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !folder.HasGrantee(granteeID) {
		return nil, fmt.Errorf("folder %s, grantee %s: %w", folderID, granteeID, domain.ErrAccessRevoked)
	}
	return folder, nil
}

// fetchAndPublish loads both folder lists from the remote store and
// republishes the cache entry wholesale.
func (s *accessService) fetchAndPublish(ctx context.Context, userID string) (*services.FolderList, error) {
	owned, err := s.folderRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned folders: %w", err)
	}
	shared, err := s.folderRepo.ListByGrantee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shared folders: %w", err)
	}

	list := &services.FolderList{Owned: owned, Shared: shared}
	s.cache.replace(userID, list)
	return list, nil
}

// republish refreshes a user's cached folder list after a mutation,
// falling back to invalidation when the refetch fails.
func (s *accessService) republish(ctx context.Context, userID string) {
	if _, err := s.fetchAndPublish(ctx, userID); err != nil {
		s.logger.Warn("folder cache refresh failed, invalidating",
			"user_id", userID,
			"error", err,
		)
		s.cache.invalidate(userID)
	}
}
