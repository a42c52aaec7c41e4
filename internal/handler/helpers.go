package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"filmroom/internal/domain"
	"filmroom/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		partialErr *domain.PartialSyncError
		httpErr    domain.HTTPError
	)

	switch {
	case errors.As(err, &partialErr):
		// The invitation is accepted but the grant write failed; the
		// client retries via the completion endpoint.
		httputil.RespondErrorWithExtras(w, http.StatusBadGateway, partialErr.Error(), map[string]interface{}{
			"invitation_id": partialErr.InvitationID,
			"folder_id":     partialErr.FolderID,
		})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyComment):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrAccessRevoked):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrEntitlementRequired):
		httputil.RespondError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrInvitationResolved):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseUUID validates that a path parameter is a well-formed UUID before
// it reaches the store layer
func parseUUID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
