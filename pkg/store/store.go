package store

import (
	"github.com/teamdir/teamdir/pkg/cache"
)

// Store groups the four caches the services read through: role and user
// entries by id, and role and user listings keyed by page and filters.
// It encapsulates key prefixing and JSON serialization.
// NOTE: This store does NOT handle locking - callers are responsible for proper synchronization
type Store struct {
	Role RoleStoreInterface
	User UserStoreInterface
}

// New creates a new Store instance with all sub-stores initialized over the
// same cache backend.
func New(cache cache.Cache) *Store {
	return &Store{
		Role: newRoleStore(cache),
		User: newUserStore(cache),
	}
}

// Compile-time interface compliance checks
var (
	_ RoleStoreInterface = (*RoleStore)(nil)
	_ UserStoreInterface = (*UserStore)(nil)
)
