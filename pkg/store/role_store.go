package store

import (
	"context"
	"net/url"

	"github.com/teamdir/teamdir/pkg/cache"
	"github.com/teamdir/teamdir/pkg/types"
)

// RoleStore handles the "role:id:" and "role:listing:" cache spaces.
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type RoleStore struct {
	cache cache.Cache
}

// newRoleStore creates a new RoleStore instance
func newRoleStore(c cache.Cache) *RoleStore {
	return &RoleStore{
		cache: c,
	}
}

func (s *RoleStore) GetByID(ctx context.Context, id string) (*types.Role, bool, error) {
	return getEntry[types.Role](ctx, s.cache, "role_by_id", roleByIDPrefix+id)
}

func (s *RoleStore) SetByID(ctx context.Context, role *types.Role) error {
	return setEntry(ctx, s.cache, "role_by_id", roleByIDPrefix+role.ID, role)
}

func (s *RoleStore) DeleteByID(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, roleByIDPrefix+id)
}

func (s *RoleStore) GetListing(ctx context.Context, page int, filters url.Values) (*types.RolePage, bool, error) {
	key := ListingKey(roleListingPrefix, page, filters)
	return getEntry[types.RolePage](ctx, s.cache, "role_listing", key)
}

func (s *RoleStore) SetListing(ctx context.Context, page int, filters url.Values, listing *types.RolePage) error {
	key := ListingKey(roleListingPrefix, page, filters)
	return setEntry(ctx, s.cache, "role_listing", key, listing)
}

func (s *RoleStore) ClearListings(ctx context.Context) error {
	return clearPrefix(ctx, s.cache, "role_listing", roleListingPrefix)
}
