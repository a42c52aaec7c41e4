package handler

import (
	"log/slog"
	"net/http"

	"filmroom/internal/domain/services"
	"filmroom/internal/httputil"
)

// VideoHandler handles video metadata and comment HTTP requests
type VideoHandler struct {
	service services.VideoService
	logger  *slog.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(service services.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterVideo records clip metadata and returns a presigned upload URL
// POST /api/folders/{id}/videos
func (h *VideoHandler) RegisterVideo(w http.ResponseWriter, r *http.Request) {
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

	var req services.RegisterVideoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FolderID = folderID
	req.CallerID = principal.UserID
	req.Plan = principal.Plan

	result, err := h.service.RegisterVideo(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// ListVideos lists a folder's videos
// GET /api/folders/{id}/videos
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid folder ID format")
		return
	}

	videos, err := h.service.ListVideos(r.Context(), httputil.GetUserID(r), folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, videos)
}

// DeleteVideo deletes a single video, binary first
// DELETE /api/videos/{id}
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid video ID format")
		return
	}

	if err := h.service.DeleteVideo(r.Context(), httputil.GetUserID(r), videoID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddComment annotates a video
// POST /api/videos/{id}/comments
func (h *VideoHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	principal, ok := httputil.GetPrincipal(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	videoID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid video ID format")
		return
	}

	var req services.AddCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.VideoID = videoID
	req.AuthorID = principal.UserID
	req.AuthorName = principal.Name

	comment, err := h.service.AddComment(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments lists a video's comments, oldest first
// GET /api/videos/{id}/comments
func (h *VideoHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid video ID format")
		return
	}

	comments, err := h.service.ListComments(r.Context(), httputil.GetUserID(r), videoID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, comments)
}
