package repositories

import (
	"context"

	"filmroom/internal/domain/models"
)

// InvitationRepository defines data access operations for invitations.
// Invitations are insert-then-update-once records: no delete operation
// exists because resolved invitations are kept as an audit trail.
type InvitationRepository interface {
	// Create persists a new invitation and assigns its ID
	Create(ctx context.Context, inv *models.Invitation) error

	// GetByID retrieves an invitation by ID
	GetByID(ctx context.Context, id string) (*models.Invitation, error)

	// ListPendingByEmail retrieves pending invitations addressed to the
	// given normalized email
	ListPendingByEmail(ctx context.Context, email string) ([]models.Invitation, error)

	// UpdateStatus transitions the invitation from `from` to `to`
	// atomically. Returns domain.ErrInvitationResolved when the record
	// exists but is no longer in the `from` state, domain.ErrNotFound
	// when it does not exist.
	UpdateStatus(ctx context.Context, id string, from, to models.InvitationStatus) error
}
