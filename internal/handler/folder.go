package handler

import (
	"log/slog"
	"net/http"

	"filmroom/internal/domain/services"
	"filmroom/internal/httputil"
)

// FolderHandler handles shared folder HTTP requests
type FolderHandler struct {
	service services.AccessService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(service services.AccessService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		service: service,
		logger:  logger,
	}
}

// CreateFolder creates a shared folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	principal, ok := httputil.GetPrincipal(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.OwnerID = principal.UserID
	req.OwnerName = principal.Name
	req.Plan = principal.Plan

	folder, err := h.service.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// ListFolders returns the caller's owned and shared folders
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListFolders(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list)
}

// GetFolder retrieves a single folder
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	folder, err := h.service.GetFolder(r.Context(), httputil.GetUserID(r), folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder runs the deletion cascade
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	if err := h.service.DeleteFolder(r.Context(), folderID, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RevokeAccess removes a coach's grant
// DELETE /api/folders/{id}/coaches/{coachID}
func (h *FolderHandler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}
	coachID, err := parseUUID(r.PathValue("coachID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid coach ID format")
		return
	}

	if err := h.service.RevokeAccess(r.Context(), httputil.GetUserID(r), coachID, folderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
