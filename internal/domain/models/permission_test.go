package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionAllows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		perm   Permission
		action Action
		want   bool
	}{
		{"view always allowed", Permission{}, ActionView, true},
		{"upload granted", Permission{CanUpload: true}, ActionUpload, true},
		{"upload denied", Permission{}, ActionUpload, false},
		{"comment granted", Permission{CanComment: true}, ActionComment, true},
		{"comment denied", Permission{}, ActionComment, false},
		{"delete granted", Permission{CanDelete: true}, ActionDelete, true},
		{"delete denied", Permission{CanUpload: true, CanComment: true}, ActionDelete, false},
		{"unknown action denied", Permission{CanUpload: true, CanComment: true, CanDelete: true}, Action("publish"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.perm.Allows(tt.action))
		})
	}
}

func TestDefaultPermission(t *testing.T) {
	t.Parallel()

	perm := DefaultPermission()
	assert.True(t, perm.CanUpload)
	assert.True(t, perm.CanComment)
	assert.False(t, perm.CanDelete)
}

func TestFolderHasGrantee(t *testing.T) {
	t.Parallel()

	folder := &Folder{
		OwnerID:     "athlete-1",
		GranteeIDs:  []string{"coach-1"},
		Permissions: map[string]Permission{"coach-1": {}},
	}

	assert.True(t, folder.HasGrantee("coach-1"))
	assert.False(t, folder.HasGrantee("coach-2"))
	// Owner access is implicit, never map-backed.
	assert.False(t, folder.HasGrantee("athlete-1"))
}
