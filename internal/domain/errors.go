package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler layer free of per-error
// switch statements for typed errors.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors shared across layers - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrEntitlementRequired means the caller's plan does not include
	// shared folders. Distinct from ErrForbidden: the user action is
	// "upgrade", not "ask the owner for access".
	ErrEntitlementRequired = errors.New("entitlement required")

	// ErrAccessRevoked means a previously valid grant no longer exists.
	// Raised by the consistency verifier, never by plain lookups, so the
	// client can tell "you lost access" apart from "this doesn't exist".
	ErrAccessRevoked = errors.New("access revoked")

	// ErrInvitationResolved means an accept/decline was attempted on an
	// invitation that already left the pending state.
	ErrInvitationResolved = errors.New("invitation already resolved")

	// ErrEmptyComment guards annotation text before any remote call.
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrPartialSync matches *PartialSyncError via errors.Is.
	ErrPartialSync = errors.New("invitation accepted but grant not yet reflected")
)

// PartialSyncError reports the two-write gap in invitation acceptance: the
// invitation status was flipped to accepted but writing the grant into the
// folder's permission map failed. The caller should retry only the grant
// write (CompleteAcceptance), not re-run acceptance.
type PartialSyncError struct {
	InvitationID string
	FolderID     string
	Err          error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("invitation %s accepted but folder %s grant failed: %v", e.InvitationID, e.FolderID, e.Err)
}

func (e *PartialSyncError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrPartialSync
func (e *PartialSyncError) Is(target error) bool { return target == ErrPartialSync }

// StatusCode implements the HTTPError interface. 502 because the accepted
// status is durable and only the downstream grant write failed.
func (e *PartialSyncError) StatusCode() int { return http.StatusBadGateway }
