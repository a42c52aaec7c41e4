package models

// Action is a folder-scoped operation subject to authorization.
type Action string

const (
	ActionView    Action = "view"
	ActionUpload  Action = "upload"
	ActionComment Action = "comment"
	ActionDelete  Action = "delete"
)

// Permission is the capability triple one coach holds on one folder.
// It is an immutable value: updates replace the whole struct, never a
// single field.
type Permission struct {
	CanUpload  bool `json:"can_upload"`
	CanComment bool `json:"can_comment"`
	CanDelete  bool `json:"can_delete"`
}

// DefaultPermission is used when an invitation does not specify an
// explicit matrix: upload and comment allowed, delete not.
func DefaultPermission() Permission {
	return Permission{CanUpload: true, CanComment: true, CanDelete: false}
}

// Allows reports whether the matrix permits the given action. ActionView
// is always allowed: holding a permission entry at all is proof of folder
// visibility.
func (p Permission) Allows(action Action) bool {
	switch action {
	case ActionView:
		return true
	case ActionUpload:
		return p.CanUpload
	case ActionComment:
		return p.CanComment
	case ActionDelete:
		return p.CanDelete
	default:
		return false
	}
}
