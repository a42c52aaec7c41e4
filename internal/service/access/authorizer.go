package access

import (
	"filmroom/internal/domain/models"
)

// Authorize reports whether the caller may perform the action on the
// folder. The check is pure and synchronous over already-loaded state: it
// consults no cache and performs no I/O. Callers that need freshness run
// VerifyAccess first and pass the refreshed record here.
//
// The owner is always authorized, independent of the permission map.
// Anyone else must hold a permission entry; holding one at all grants
// view, the remaining actions map to the matrix booleans.
func Authorize(callerID string, action models.Action, folder *models.Folder) bool {
	if folder == nil || callerID == "" {
		return false
	}
	if callerID == folder.OwnerID {
		return true
	}
	perm, ok := folder.Permissions[callerID]
	if !ok {
		return false
	}
	return perm.Allows(action)
}
