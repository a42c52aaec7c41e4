package access

import (
	"context"
	"fmt"
	"sync"

	"filmroom/internal/domain"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/repositories"
	"filmroom/internal/domain/services"
)

// In-memory fakes for the remote store gateways. Each fake holds its
// records in a map and exposes per-method error injection so tests can
// exercise the partial-failure paths.

type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	nextID  int

	createErr      error
	getErr         error
	listOwnerErr   error
	listGranteeErr error
	addGrantErr    error
	removeGrantErr map[string]error // keyed by grantee ID
	deleteErr      error
}

var _ repositories.FolderRepository = (*fakeFolderRepo)(nil)

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		folders:        make(map[string]*models.Folder),
		removeGrantErr: make(map[string]error),
	}
}

func (f *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	folder.ID = fmt.Sprintf("folder-%d", f.nextID)
	cp := *folder
	f.folders[folder.ID] = &cp
	return nil
}

func (f *fakeFolderRepo) GetByID(_ context.Context, id string) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	folder, ok := f.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return copyFolder(folder), nil
}

func (f *fakeFolderRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listOwnerErr != nil {
		return nil, f.listOwnerErr
	}
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID {
			out = append(out, *copyFolder(folder))
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) ListByGrantee(_ context.Context, granteeID string) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listGranteeErr != nil {
		return nil, f.listGranteeErr
	}
	var out []models.Folder
	for _, folder := range f.folders {
		if _, ok := folder.Permissions[granteeID]; ok {
			out = append(out, *copyFolder(folder))
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) AddGrant(_ context.Context, folderID, granteeID string, perm models.Permission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addGrantErr != nil {
		return f.addGrantErr
	}
	folder, ok := f.folders[folderID]
	if !ok {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	if _, exists := folder.Permissions[granteeID]; !exists {
		folder.GranteeIDs = append(folder.GranteeIDs, granteeID)
	}
	if folder.Permissions == nil {
		folder.Permissions = make(map[string]models.Permission)
	}
	folder.Permissions[granteeID] = perm
	return nil
}

func (f *fakeFolderRepo) RemoveGrant(_ context.Context, folderID, granteeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.removeGrantErr[granteeID]; err != nil {
		return err
	}
	folder, ok := f.folders[folderID]
	if !ok {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	delete(folder.Permissions, granteeID)
	kept := folder.GranteeIDs[:0]
	for _, id := range folder.GranteeIDs {
		if id != granteeID {
			kept = append(kept, id)
		}
	}
	folder.GranteeIDs = kept
	return nil
}

func (f *fakeFolderRepo) AdjustVideoCount(_ context.Context, folderID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder, ok := f.folders[folderID]
	if !ok {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	folder.VideoCount += delta
	if folder.VideoCount < 0 {
		folder.VideoCount = 0
	}
	return nil
}

func (f *fakeFolderRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(f.folders, id)
	return nil
}

func copyFolder(folder *models.Folder) *models.Folder {
	cp := *folder
	cp.GranteeIDs = append([]string(nil), folder.GranteeIDs...)
	cp.Permissions = make(map[string]models.Permission, len(folder.Permissions))
	for k, v := range folder.Permissions {
		cp.Permissions[k] = v
	}
	return &cp
}

type fakeInvitationRepo struct {
	mu          sync.Mutex
	invitations map[string]*models.Invitation
	nextID      int

	createErr       error
	updateStatusErr error
}

var _ repositories.InvitationRepository = (*fakeInvitationRepo)(nil)

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: make(map[string]*models.Invitation)}
}

func (f *fakeInvitationRepo) Create(_ context.Context, inv *models.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	cp := *inv
	f.invitations[inv.ID] = &cp
	return nil
}

func (f *fakeInvitationRepo) GetByID(_ context.Context, id string) (*models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[id]
	if !ok {
		return nil, fmt.Errorf("invitation %s: %w", id, domain.ErrNotFound)
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvitationRepo) ListPendingByEmail(_ context.Context, email string) ([]models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invitation
	for _, inv := range f.invitations {
		if inv.InviteeEmail == email && inv.Status == models.InvitationPending {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) UpdateStatus(_ context.Context, id string, from, to models.InvitationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	inv, ok := f.invitations[id]
	if !ok {
		return fmt.Errorf("invitation %s: %w", id, domain.ErrNotFound)
	}
	if inv.Status != from {
		return fmt.Errorf("invitation %s is %s: %w", id, inv.Status, domain.ErrInvitationResolved)
	}
	inv.Status = to
	return nil
}

type fakeVideoRepo struct {
	mu       sync.Mutex
	videos   map[string]*models.Video
	comments map[string][]models.Comment
	nextID   int

	createErr  error
	deleteErr  map[string]error // keyed by video ID
	listErr    error
	commentErr error
}

var _ repositories.VideoRepository = (*fakeVideoRepo)(nil)

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos:    make(map[string]*models.Video),
		comments:  make(map[string][]models.Comment),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeVideoRepo) Create(_ context.Context, video *models.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	video.ID = fmt.Sprintf("video-%d", f.nextID)
	cp := *video
	f.videos[video.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) GetByID(_ context.Context, id string) (*models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	video, ok := f.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	cp := *video
	return &cp, nil
}

func (f *fakeVideoRepo) ListByFolder(_ context.Context, folderID string) ([]models.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Video
	for _, video := range f.videos {
		if video.FolderID == folderID {
			out = append(out, *video)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	if _, ok := f.videos[id]; !ok {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepo) AddComment(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commentErr != nil {
		return f.commentErr
	}
	f.nextID++
	comment.ID = fmt.Sprintf("comment-%d", f.nextID)
	f.comments[comment.VideoID] = append(f.comments[comment.VideoID], *comment)
	return nil
}

func (f *fakeVideoRepo) ListComments(_ context.Context, videoID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Comment(nil), f.comments[videoID]...), nil
}

type fakeBlobStore struct {
	mu      sync.Mutex
	deleted []string

	deleteErr map[string]error // keyed by storage key
	signErr   error
}

var _ repositories.BlobStore = (*fakeBlobStore)(nil)

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{deleteErr: make(map[string]error)}
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[key]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobStore) PresignPut(_ context.Context, key string) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://blobs.test/" + key, nil
}

func (f *fakeBlobStore) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	issued   []string // invitation IDs
	revoked  []string // grantee IDs
	deleted  []string // grantee IDs
	failWith error
}

var _ services.Notifier = (*fakeNotifier)(nil)

func (f *fakeNotifier) InvitationIssued(_ context.Context, inv *models.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.issued = append(f.issued, inv.ID)
	return nil
}

func (f *fakeNotifier) AccessRevoked(_ context.Context, granteeID, folderName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.revoked = append(f.revoked, granteeID)
	return nil
}

func (f *fakeNotifier) FolderDeleted(_ context.Context, granteeID, folderName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.deleted = append(f.deleted, granteeID)
	return nil
}
