package handler

import (
	"log/slog"
	"net/http"

	"filmroom/internal/domain/services"
	"filmroom/internal/httputil"
)

// InvitationHandler handles sharing invitation HTTP requests
type InvitationHandler struct {
	service services.AccessService
	logger  *slog.Logger
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(service services.AccessService, logger *slog.Logger) *InvitationHandler {
	return &InvitationHandler{
		service: service,
		logger:  logger,
	}
}

// InviteCoach issues a pending invitation for a folder
// POST /api/folders/{id}/invitations
func (h *InvitationHandler) InviteCoach(w http.ResponseWriter, r *http.Request) {
	principal, ok := httputil.GetPrincipal(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	var req services.InviteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FolderID = folderID
	req.OwnerID = principal.UserID
	req.OwnerName = principal.Name

	inv, err := h.service.InviteCoach(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, inv)
}

// ListPending returns pending invitations addressed to the caller's email
// GET /api/invitations
func (h *InvitationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	principal, ok := httputil.GetPrincipal(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	pending, err := h.service.ListPendingInvitations(r.Context(), principal.Email)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pending)
}

// Accept resolves an invitation and grants folder access
// POST /api/invitations/{id}/accept
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	invitationID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invitation ID format")
		return
	}

	folder, err := h.service.AcceptInvitation(r.Context(), invitationID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Complete retries the grant write for an already-accepted invitation
// POST /api/invitations/{id}/complete
func (h *InvitationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	invitationID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invitation ID format")
		return
	}

	folder, err := h.service.CompleteAcceptance(r.Context(), invitationID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Decline resolves an invitation without granting access
// POST /api/invitations/{id}/decline
func (h *InvitationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	invitationID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invitation ID format")
		return
	}

	if err := h.service.DeclineInvitation(r.Context(), invitationID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
