package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/services"
	"filmroom/internal/httputil"
)

// stubAccessService lets each test supply canned responses per operation.
type stubAccessService struct {
	createFolder func(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error)
	getFolder    func(ctx context.Context, callerID, folderID string) (*models.Folder, error)
	accept       func(ctx context.Context, invitationID, accepterID string) (*models.Folder, error)
	revoke       func(ctx context.Context, ownerID, granteeID, folderID string) error
}

var _ services.AccessService = (*stubAccessService)(nil)

func (s *stubAccessService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	return s.createFolder(ctx, req)
}

func (s *stubAccessService) GetFolder(ctx context.Context, callerID, folderID string) (*models.Folder, error) {
	return s.getFolder(ctx, callerID, folderID)
}

func (s *stubAccessService) ListFolders(context.Context, string) (*services.FolderList, error) {
	return &services.FolderList{}, nil
}

func (s *stubAccessService) InviteCoach(context.Context, *services.InviteRequest) (*models.Invitation, error) {
	return nil, errors.New("not stubbed")
}

func (s *stubAccessService) ListPendingInvitations(context.Context, string) ([]models.Invitation, error) {
	return nil, errors.New("not stubbed")
}

func (s *stubAccessService) AcceptInvitation(ctx context.Context, invitationID, accepterID string) (*models.Folder, error) {
	return s.accept(ctx, invitationID, accepterID)
}

func (s *stubAccessService) CompleteAcceptance(context.Context, string, string) (*models.Folder, error) {
	return nil, errors.New("not stubbed")
}

func (s *stubAccessService) DeclineInvitation(context.Context, string) error {
	return errors.New("not stubbed")
}

func (s *stubAccessService) RevokeAccess(ctx context.Context, ownerID, granteeID, folderID string) error {
	return s.revoke(ctx, ownerID, granteeID, folderID)
}

func (s *stubAccessService) DeleteFolder(context.Context, string, string) error {
	return errors.New("not stubbed")
}

func (s *stubAccessService) VerifyAccess(context.Context, string, string) (*models.Folder, error) {
	return nil, errors.New("not stubbed")
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return httputil.WithPrincipal(r, httputil.Principal{
		UserID: "11111111-1111-1111-1111-111111111111",
		Email:  "athlete@team.test",
		Name:   "Alex",
		Plan:   "premium",
	})
}

func newMux(access services.AccessService) *http.ServeMux {
	logger := slog.New(slog.DiscardHandler)
	folderHandler := NewFolderHandler(access, logger)
	invitationHandler := NewInvitationHandler(access, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("DELETE /api/folders/{id}/coaches/{coachID}", folderHandler.RevokeAccess)
	mux.HandleFunc("POST /api/invitations/{id}/accept", invitationHandler.Accept)
	return mux
}

func TestCreateFolderHandler(t *testing.T) {
	t.Parallel()

	t.Run("fills the request from the principal", func(t *testing.T) {
		t.Parallel()
		var captured *services.CreateFolderRequest
		mux := newMux(&stubAccessService{
			createFolder: func(_ context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
				captured = req
				return &models.Folder{ID: uuid.NewString(), Name: req.Name, OwnerID: req.OwnerID}, nil
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/folders", `{"name":"Game Film"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "Game Film", captured.Name)
		assert.Equal(t, "11111111-1111-1111-1111-111111111111", captured.OwnerID)
		assert.Equal(t, "Alex", captured.OwnerName)
		assert.Equal(t, "premium", captured.Plan)
	})

	t.Run("entitlement failure maps to 402", func(t *testing.T) {
		t.Parallel()
		mux := newMux(&stubAccessService{
			createFolder: func(context.Context, *services.CreateFolderRequest) (*models.Folder, error) {
				return nil, fmt.Errorf("plan does not include shared folders: %w", domain.ErrEntitlementRequired)
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/folders", `{"name":"Game Film"}`))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		t.Parallel()
		mux := newMux(&stubAccessService{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/folders", `{"name":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetFolderHandler(t *testing.T) {
	t.Parallel()

	folderID := uuid.NewString()

	t.Run("passes the path parameter through", func(t *testing.T) {
		t.Parallel()
		mux := newMux(&stubAccessService{
			getFolder: func(_ context.Context, callerID, id string) (*models.Folder, error) {
				assert.Equal(t, folderID, id)
				return &models.Folder{ID: id, OwnerID: callerID}, nil
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/folders/"+folderID, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), folderID)
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		t.Parallel()
		mux := newMux(&stubAccessService{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/folders/not-a-uuid", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		t.Parallel()
		mux := newMux(&stubAccessService{
			getFolder: func(context.Context, string, string) (*models.Folder, error) {
				return nil, fmt.Errorf("folder: %w", domain.ErrNotFound)
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/folders/"+folderID, ""))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRevokeAccessHandler(t *testing.T) {
	t.Parallel()

	folderID := uuid.NewString()
	coachID := uuid.NewString()

	mux := newMux(&stubAccessService{
		revoke: func(_ context.Context, ownerID, granteeID, id string) error {
			assert.Equal(t, "11111111-1111-1111-1111-111111111111", ownerID)
			assert.Equal(t, coachID, granteeID)
			assert.Equal(t, folderID, id)
			return nil
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/folders/"+folderID+"/coaches/"+coachID, ""))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAcceptInvitationHandler(t *testing.T) {
	t.Parallel()

	invitationID := uuid.NewString()

	t.Run("resolved invitation maps to 409", func(t *testing.T) {
		t.Parallel()
		mux := newMux(&stubAccessService{
			accept: func(context.Context, string, string) (*models.Folder, error) {
				return nil, fmt.Errorf("invitation is declined: %w", domain.ErrInvitationResolved)
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/invitations/"+invitationID+"/accept", ""))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("partial sync maps to 502 with retry fields", func(t *testing.T) {
		t.Parallel()
		folderID := uuid.NewString()
		mux := newMux(&stubAccessService{
			accept: func(context.Context, string, string) (*models.Folder, error) {
				return nil, &domain.PartialSyncError{
					InvitationID: invitationID,
					FolderID:     folderID,
					Err:          errors.New("folder store down"),
				}
			},
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/invitations/"+invitationID+"/accept", ""))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), invitationID)
		assert.Contains(t, rec.Body.String(), folderID)
	})
}
