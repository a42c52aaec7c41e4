package services

import (
	"context"

	"filmroom/internal/domain/models"
)

// AccessService orchestrates the shared-folder lifecycle: creation,
// invitations, acceptance, revocation and cascading deletion. It is the
// only component that mutates a folder's permission map.
type AccessService interface {
	// CreateFolder creates a shared folder after the entitlement gate
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder the caller is allowed to view
	GetFolder(ctx context.Context, callerID, folderID string) (*models.Folder, error)

	// ListFolders returns the caller's owned and shared folders
	ListFolders(ctx context.Context, callerID string) (*FolderList, error)

	// InviteCoach issues a pending invitation; the folder record is not touched
	InviteCoach(ctx context.Context, req *InviteRequest) (*models.Invitation, error)

	// ListPendingInvitations returns pending invitations addressed to the email
	ListPendingInvitations(ctx context.Context, email string) ([]models.Invitation, error)

	// AcceptInvitation resolves an invitation and promotes it into a
	// folder grant. May return *domain.PartialSyncError when the status
	// write succeeded but the grant write failed.
	AcceptInvitation(ctx context.Context, invitationID, accepterID string) (*models.Folder, error)

	// CompleteAcceptance retries only the grant write for an invitation
	// that is already accepted (the PartialSyncError recovery path)
	CompleteAcceptance(ctx context.Context, invitationID, accepterID string) (*models.Folder, error)

	// DeclineInvitation resolves an invitation without touching the folder
	DeclineInvitation(ctx context.Context, invitationID string) error

	// RevokeAccess removes a coach's grant; invitation records stay untouched
	RevokeAccess(ctx context.Context, ownerID, granteeID, folderID string) error

	// DeleteFolder runs the best-effort cascade and removes the folder
	DeleteFolder(ctx context.Context, folderID, ownerID string) error

	// VerifyAccess re-fetches authoritative state and fails with
	// domain.ErrAccessRevoked when the grant is gone
	VerifyAccess(ctx context.Context, folderID, granteeID string) (*models.Folder, error)
}

// VideoService handles video metadata and annotations inside shared
// folders. Every grantee write action re-verifies access first.
type VideoService interface {
	// RegisterVideo records uploaded clip metadata and returns a presigned
	// upload URL for the binary
	RegisterVideo(ctx context.Context, req *RegisterVideoRequest) (*RegisterVideoResult, error)

	// ListVideos lists a folder's videos for an authorized caller
	ListVideos(ctx context.Context, callerID, folderID string) ([]models.Video, error)

	// DeleteVideo deletes binary then metadata for a single video
	DeleteVideo(ctx context.Context, callerID, videoID string) error

	// AddComment annotates a video
	AddComment(ctx context.Context, req *AddCommentRequest) (*models.Comment, error)

	// ListComments lists a video's annotations for an authorized caller
	ListComments(ctx context.Context, callerID, videoID string) ([]models.Comment, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name      string `json:"name"`
	OwnerID   string `json:"-"`
	OwnerName string `json:"-"`
	Plan      string `json:"-"` // subscription plan, checked against the entitlements registry
}

// InviteRequest represents a sharing invitation request
type InviteRequest struct {
	FolderID   string             `json:"-"`
	OwnerID    string             `json:"-"`
	OwnerName  string             `json:"-"`
	Email      string             `json:"email"`
	Permission *models.Permission `json:"permission,omitempty"` // nil = default matrix
}

// FolderList is the caller's view of their folders
type FolderList struct {
	Owned  []models.Folder `json:"owned"`
	Shared []models.Folder `json:"shared"`
}

// RegisterVideoRequest represents an upload registration request
type RegisterVideoRequest struct {
	FolderID    string `json:"-"`
	CallerID    string `json:"-"`
	Plan        string `json:"-"` // caller's plan, only consulted for owner uploads
	Title       string `json:"title"`
	DurationSec int    `json:"duration_sec"`
}

// RegisterVideoResult carries the created metadata plus the presigned
// upload URL for the binary
type RegisterVideoResult struct {
	Video     *models.Video `json:"video"`
	UploadURL string        `json:"upload_url"`
}

// AddCommentRequest represents an annotation request
type AddCommentRequest struct {
	VideoID    string `json:"-"`
	AuthorID   string `json:"-"`
	AuthorName string `json:"-"`
	Text       string `json:"text"`
}
