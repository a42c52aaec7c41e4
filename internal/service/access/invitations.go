package access

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/services"
)

// InviteCoach issues a pending invitation keyed by the invitee's email.
// The folder record is not touched: a folder only gains a grantee on
// acceptance. Duplicate pending invitations for the same email/folder
// pair are allowed deliberately (re-inviting is harmless because
// acceptance is keyed by invitation ID, not by email+folder).
func (s *accessService) InviteCoach(ctx context.Context, req *services.InviteRequest) (*models.Invitation, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != req.OwnerID {
		return nil, fmt.Errorf("folder %s: %w", req.FolderID, domain.ErrForbidden)
	}

	perm := models.DefaultPermission()
	if req.Permission != nil {
		perm = *req.Permission
	}

	ownerName := req.OwnerName
	if ownerName == "" {
		ownerName = folder.OwnerName
	}

	inv := &models.Invitation{
		FolderID:     folder.ID,
		FolderName:   folder.Name,
		OwnerID:      folder.OwnerID,
		OwnerName:    ownerName,
		InviteeEmail: req.Email,
		Permission:   perm,
		Status:       models.InvitationPending,
		CreatedAt:    time.Now(),
	}

	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.notifier.InvitationIssued(ctx, inv); err != nil {
		s.logger.Warn("invitation notification failed",
			"invitation_id", inv.ID,
			"error", err,
		)
	}

	s.logger.Info("invitation issued",
		"invitation_id", inv.ID,
		"folder_id", inv.FolderID,
		"invitee_email", inv.InviteeEmail,
	)

	return inv, nil
}

// ListPendingInvitations returns pending invitations addressed to the
// email. This is the bridge for accounts that did not exist at invitation
// time: the coach's client queries by its own verified email.
func (s *accessService) ListPendingInvitations(ctx context.Context, email string) ([]models.Invitation, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("empty email: %w", domain.ErrValidation)
	}
	return s.inviteRepo.ListPendingByEmail(ctx, email)
}

// AcceptInvitation resolves a pending invitation and promotes it into a
// grant on the target folder. The two writes are not transactional: when
// the status write succeeds but the grant write fails, the caller gets a
// *domain.PartialSyncError and should retry only the grant via
// CompleteAcceptance - re-running acceptance would fail the state machine
// precondition since the status is already accepted.
func (s *accessService) AcceptInvitation(ctx context.Context, invitationID, accepterID string) (*models.Folder, error) {
	if accepterID == "" {
		return nil, fmt.Errorf("empty accepter: %w", domain.ErrValidation)
	}

	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if err := s.inviteRepo.UpdateStatus(ctx, invitationID, models.InvitationPending, models.InvitationAccepted); err != nil {
		return nil, err
	}

	folder, err := s.applyGrant(ctx, inv, accepterID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invitation accepted",
		"invitation_id", invitationID,
		"folder_id", inv.FolderID,
		"grantee_id", accepterID,
	)

	return folder, nil
}

// CompleteAcceptance retries only the grant write for an invitation that
// already reached the accepted state (the PartialSyncError recovery
// path).
func (s *accessService) CompleteAcceptance(ctx context.Context, invitationID, accepterID string) (*models.Folder, error) {
	if accepterID == "" {
		return nil, fmt.Errorf("empty accepter: %w", domain.ErrValidation)
	}

	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case models.InvitationAccepted:
		// proceed with the grant retry
	case models.InvitationDeclined:
		return nil, fmt.Errorf("invitation %s is declined: %w", invitationID, domain.ErrInvitationResolved)
	default:
		return nil, fmt.Errorf("invitation %s is still pending, accept it first: %w", invitationID, domain.ErrValidation)
	}

	return s.applyGrant(ctx, inv, accepterID)
}

// DeclineInvitation resolves a pending invitation without touching the
// folder. The record is kept (status declined) as an audit trail.
func (s *accessService) DeclineInvitation(ctx context.Context, invitationID string) error {
	if err := s.inviteRepo.UpdateStatus(ctx, invitationID, models.InvitationPending, models.InvitationDeclined); err != nil {
		return err
	}

	s.logger.Info("invitation declined", "invitation_id", invitationID)
	return nil
}

// applyGrant writes the invitation's permission matrix into the folder
// and returns the refreshed record. A grant failure after acceptance is
// the partial-sync gap and is reported as such.
func (s *accessService) applyGrant(ctx context.Context, inv *models.Invitation, accepterID string) (*models.Folder, error) {
	if err := s.folderRepo.AddGrant(ctx, inv.FolderID, accepterID, inv.Permission); err != nil {
		s.logger.Error("grant write failed after acceptance",
			"invitation_id", inv.ID,
			"folder_id", inv.FolderID,
			"grantee_id", accepterID,
			"error", err,
		)
		return nil, &domain.PartialSyncError{
			InvitationID: inv.ID,
			FolderID:     inv.FolderID,
			Err:          err,
		}
	}

	s.republish(ctx, accepterID)

	folder, err := s.folderRepo.GetByID(ctx, inv.FolderID)
	if err != nil {
		return nil, fmt.Errorf("reload folder after grant: %w", err)
	}
	return folder, nil
}
