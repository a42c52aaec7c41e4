package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filmroom/internal/domain/models"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	folder := &models.Folder{
		ID:         "folder-1",
		OwnerID:    "athlete-1",
		GranteeIDs: []string{"coach-1", "coach-2"},
		Permissions: map[string]models.Permission{
			"coach-1": {CanUpload: true, CanComment: true, CanDelete: false},
			"coach-2": {},
		},
	}

	tests := []struct {
		name   string
		caller string
		action models.Action
		want   bool
	}{
		{"owner views", "athlete-1", models.ActionView, true},
		{"owner uploads", "athlete-1", models.ActionUpload, true},
		{"owner deletes despite no map entry", "athlete-1", models.ActionDelete, true},
		{"grantee views", "coach-1", models.ActionView, true},
		{"grantee uploads per matrix", "coach-1", models.ActionUpload, true},
		{"grantee comments per matrix", "coach-1", models.ActionComment, true},
		{"grantee delete denied per matrix", "coach-1", models.ActionDelete, false},
		{"all-false matrix still views", "coach-2", models.ActionView, true},
		{"all-false matrix denies upload", "coach-2", models.ActionUpload, false},
		{"stranger views", "coach-3", models.ActionView, false},
		{"stranger uploads", "coach-3", models.ActionUpload, false},
		{"empty caller", "", models.ActionView, false},
		{"unknown action denied", "coach-1", models.Action("transcode"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Authorize(tt.caller, tt.action, folder))
		})
	}

	t.Run("nil folder", func(t *testing.T) {
		t.Parallel()
		assert.False(t, Authorize("athlete-1", models.ActionView, nil))
	})
}
