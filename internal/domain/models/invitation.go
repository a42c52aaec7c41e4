package models

import (
	"strings"
	"time"
)

// InvitationStatus is the lifecycle state of a sharing offer.
// Transitions are monotonic and one-directional:
// pending -> accepted, or pending -> declined. Nothing leaves a terminal
// state, and invitation records are never deleted (they double as an
// audit trail).
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Resolved reports whether the status is terminal.
func (s InvitationStatus) Resolved() bool {
	return s == InvitationAccepted || s == InvitationDeclined
}

// Invitation is an offer to share one folder with one email address. The
// invitee is keyed by email rather than user ID because the coach account
// may not exist yet when the athlete sends the invite.
type Invitation struct {
	ID           string           `json:"id" db:"id"`
	FolderID     string           `json:"folder_id" db:"folder_id"`
	FolderName   string           `json:"folder_name" db:"folder_name"` // denormalized for display
	OwnerID      string           `json:"owner_id" db:"owner_id"`
	OwnerName    string           `json:"owner_name" db:"owner_name"`
	InviteeEmail string           `json:"invitee_email" db:"invitee_email"` // stored normalized
	Permission   Permission       `json:"permission"`
	Status       InvitationStatus `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// NormalizeEmail trims and case-folds an email address. Every email that
// enters or queries the invitations collection goes through this, so the
// "invitations addressed to me" lookup is an exact match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
