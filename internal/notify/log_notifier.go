// Package notify contains Notifier implementations. Push/email delivery
// is a fire-and-forget side effect; the log notifier stands in until a
// real delivery channel is wired up.
package notify

import (
	"context"
	"log/slog"

	"filmroom/internal/domain/models"
	"filmroom/internal/domain/services"
)

// LogNotifier writes notifications to the structured log instead of
// delivering them.
type LogNotifier struct {
	logger *slog.Logger
}

var _ services.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// InvitationIssued logs the invitation instead of emailing the invitee.
func (n *LogNotifier) InvitationIssued(ctx context.Context, inv *models.Invitation) error {
	n.logger.Info("notify: invitation issued",
		"invitation_id", inv.ID,
		"invitee_email", inv.InviteeEmail,
		"folder_name", inv.FolderName,
	)
	return nil
}

// AccessRevoked logs the revocation notice.
func (n *LogNotifier) AccessRevoked(ctx context.Context, granteeID, folderName string) error {
	n.logger.Info("notify: access revoked",
		"grantee_id", granteeID,
		"folder_name", folderName,
	)
	return nil
}

// FolderDeleted logs the deletion notice.
func (n *LogNotifier) FolderDeleted(ctx context.Context, granteeID, folderName string) error {
	n.logger.Info("notify: folder deleted",
		"grantee_id", granteeID,
		"folder_name", folderName,
	)
	return nil
}
