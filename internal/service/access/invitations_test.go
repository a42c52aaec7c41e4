package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/services"
)

func TestInviteCoach(t *testing.T) {
	t.Parallel()

	t.Run("issues pending invitation without touching the folder", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")

		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "  Coach@Team.Test  ",
		})

		require.NoError(t, err)
		assert.Equal(t, models.InvitationPending, inv.Status)
		assert.Equal(t, "coach@team.test", inv.InviteeEmail)
		assert.Equal(t, models.DefaultPermission(), inv.Permission)
		assert.Equal(t, folder.Name, inv.FolderName)

		got, err := f.svc.GetFolder(context.Background(), "athlete-1", folder.ID)
		require.NoError(t, err)
		assert.Empty(t, got.GranteeIDs)
	})

	t.Run("explicit permission matrix is carried", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		perm := models.Permission{CanUpload: false, CanComment: true, CanDelete: true}

		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID:   folder.ID,
			OwnerID:    "athlete-1",
			Email:      "coach@team.test",
			Permission: &perm,
		})

		require.NoError(t, err)
		assert.Equal(t, perm, inv.Permission)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")

		_, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "not-an-email",
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("only the owner can invite", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")

		_, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-2",
			Email:    "coach@team.test",
		})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("duplicate pending invitations are permitted", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")

		for range 2 {
			_, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
				FolderID: folder.ID,
				OwnerID:  "athlete-1",
				Email:    "coach@team.test",
			})
			require.NoError(t, err)
		}

		pending, err := f.svc.ListPendingInvitations(context.Background(), "coach@team.test")
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("notification failure does not fail the invite", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		f.notifier.failWith = errors.New("smtp down")

		_, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "coach@team.test",
		})

		assert.NoError(t, err)
	})
}

func TestListPendingInvitations(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
	inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
		FolderID: folder.ID,
		OwnerID:  "athlete-1",
		Email:    "coach@team.test",
	})
	require.NoError(t, err)

	t.Run("lookup normalizes the email", func(t *testing.T) {
		pending, err := f.svc.ListPendingInvitations(context.Background(), " COACH@team.test ")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, inv.ID, pending[0].ID)
	})

	t.Run("resolved invitations drop out", func(t *testing.T) {
		require.NoError(t, f.svc.DeclineInvitation(context.Background(), inv.ID))
		pending, err := f.svc.ListPendingInvitations(context.Background(), "coach@team.test")
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := f.svc.ListPendingInvitations(context.Background(), "  ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAcceptInvitation(t *testing.T) {
	t.Parallel()

	t.Run("grants the invitation's matrix", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		perm := models.Permission{CanUpload: true, CanComment: false, CanDelete: false}
		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID:   folder.ID,
			OwnerID:    "athlete-1",
			Email:      "coach@team.test",
			Permission: &perm,
		})
		require.NoError(t, err)

		got, err := f.svc.AcceptInvitation(context.Background(), inv.ID, "coach-1")
		require.NoError(t, err)
		assert.True(t, got.HasGrantee("coach-1"))
		assert.Equal(t, perm, got.Permissions["coach-1"])

		stored, err := f.invites.GetByID(context.Background(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvitationAccepted, stored.Status)
	})

	t.Run("accepting twice fails", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "coach@team.test",
		})
		require.NoError(t, err)
		_, err = f.svc.AcceptInvitation(context.Background(), inv.ID, "coach-1")
		require.NoError(t, err)

		_, err = f.svc.AcceptInvitation(context.Background(), inv.ID, "coach-1")
		assert.ErrorIs(t, err, domain.ErrInvitationResolved)
	})

	t.Run("accepting a declined invitation fails", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "coach@team.test",
		})
		require.NoError(t, err)
		require.NoError(t, f.svc.DeclineInvitation(context.Background(), inv.ID))

		_, err = f.svc.AcceptInvitation(context.Background(), inv.ID, "coach-1")
		assert.ErrorIs(t, err, domain.ErrInvitationResolved)

		got, err := f.svc.GetFolder(context.Background(), "athlete-1", folder.ID)
		require.NoError(t, err)
		assert.False(t, got.HasGrantee("coach-1"))
	})

	t.Run("missing invitation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.AcceptInvitation(context.Background(), "inv-999", "coach-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeclineInvitation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
	inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
		FolderID: folder.ID,
		OwnerID:  "athlete-1",
		Email:    "coach@team.test",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeclineInvitation(context.Background(), inv.ID))

	stored, err := f.invites.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationDeclined, stored.Status)

	t.Run("declining twice fails", func(t *testing.T) {
		err := f.svc.DeclineInvitation(context.Background(), inv.ID)
		assert.ErrorIs(t, err, domain.ErrInvitationResolved)
	})
}

func TestPartialAcceptanceRecovery(t *testing.T) {
	t.Parallel()

	t.Run("grant failure after the status write reports partial sync", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "coach@team.test",
		})
		require.NoError(t, err)
		f.folders.addGrantErr = errors.New("folder store down")

		_, err = f.svc.AcceptInvitation(context.Background(), inv.ID, "coach-1")

		var partial *domain.PartialSyncError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, inv.ID, partial.InvitationID)
		assert.Equal(t, folder.ID, partial.FolderID)
		assert.ErrorIs(t, err, domain.ErrPartialSync)

		// The status write stuck: the invitation is accepted, the grant is not.
		stored, err := f.invites.GetByID(context.Background(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvitationAccepted, stored.Status)

		// CompleteAcceptance retries only the grant once the store recovers.
		f.folders.addGrantErr = nil
		got, err := f.svc.CompleteAcceptance(context.Background(), inv.ID, "coach-1")
		require.NoError(t, err)
		assert.True(t, got.HasGrantee("coach-1"))
	})

	t.Run("completion of a pending invitation is rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "coach@team.test",
		})
		require.NoError(t, err)

		_, err = f.svc.CompleteAcceptance(context.Background(), inv.ID, "coach-1")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("completion of a declined invitation is rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		folder := f.mustCreateFolder(t, "Game Film", "athlete-1")
		inv, err := f.svc.InviteCoach(context.Background(), &services.InviteRequest{
			FolderID: folder.ID,
			OwnerID:  "athlete-1",
			Email:    "coach@team.test",
		})
		require.NoError(t, err)
		require.NoError(t, f.svc.DeclineInvitation(context.Background(), inv.ID))

		_, err = f.svc.CompleteAcceptance(context.Background(), inv.ID, "coach-1")
		assert.ErrorIs(t, err, domain.ErrInvitationResolved)
	})
}
