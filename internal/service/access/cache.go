package access

import (
	"sync"

	"filmroom/internal/domain/services"
)

// folderCache is the in-memory "my folders" view, keyed by user ID.
// Entries are republished wholesale after each mutating operation rather
// than patched in place, so readers never observe a partially updated
// list. It is a convenience cache only: VerifyAccess always goes to the
// remote store.
type folderCache struct {
	mu     sync.RWMutex
	byUser map[string]*services.FolderList
}

func newFolderCache() *folderCache {
	return &folderCache{byUser: make(map[string]*services.FolderList)}
}

// get returns the cached list for a user, or nil when absent.
func (c *folderCache) get(userID string) *services.FolderList {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byUser[userID]
}

// replace swaps in a freshly fetched list for a user.
func (c *folderCache) replace(userID string, list *services.FolderList) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUser[userID] = list
}

// invalidate drops a user's cached list; the next read refetches.
func (c *folderCache) invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byUser, userID)
}
