package services

import (
	"context"

	"filmroom/internal/domain/models"
)

// Notifier delivers fire-and-forget notifications (push/email). Delivery
// is not part of the correctness contract: callers log failures and move
// on.
type Notifier interface {
	// InvitationIssued tells the invitee a new invitation is waiting
	InvitationIssued(ctx context.Context, inv *models.Invitation) error

	// AccessRevoked tells a coach they lost access to a folder
	AccessRevoked(ctx context.Context, granteeID, folderName string) error

	// FolderDeleted tells a coach a folder they had access to is gone
	FolderDeleted(ctx context.Context, granteeID, folderName string) error
}
