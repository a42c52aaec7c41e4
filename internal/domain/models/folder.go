package models

import (
	"time"
)

// Folder is a named collection of videos owned by exactly one athlete.
//
// Invariant: a coach ID appears in GranteeIDs iff it has an entry in
// Permissions. The owner is never present in either - owner authorization
// is implicit and unconditional.
type Folder struct {
	ID          string                `json:"id" db:"id"`
	Name        string                `json:"name" db:"name"`
	OwnerID     string                `json:"owner_id" db:"owner_id"`
	OwnerName   string                `json:"owner_name" db:"owner_name"` // denormalized for display, not authoritative
	GranteeIDs  []string              `json:"grantee_ids" db:"grantee_ids"`
	Permissions map[string]Permission `json:"permissions" db:"permissions"`
	VideoCount  int                   `json:"video_count" db:"video_count"` // cached, may lag the true count
	CreatedAt   time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at" db:"updated_at"`
}

// HasGrantee reports whether the coach currently holds access.
func (f *Folder) HasGrantee(coachID string) bool {
	_, ok := f.Permissions[coachID]
	return ok
}
