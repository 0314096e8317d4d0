package store

import (
	"context"
	"net/url"

	"github.com/teamdir/teamdir/pkg/cache"
	"github.com/teamdir/teamdir/pkg/types"
)

// UserStore handles the "user:id:" and "user:listing:" cache spaces. Values
// are enriched users; population happens only from successful fetches.
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type UserStore struct {
	cache cache.Cache
}

// newUserStore creates a new UserStore instance
func newUserStore(c cache.Cache) *UserStore {
	return &UserStore{
		cache: c,
	}
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*types.UserWithRole, bool, error) {
	return getEntry[types.UserWithRole](ctx, s.cache, "user_by_id", userByIDPrefix+id)
}

func (s *UserStore) SetByID(ctx context.Context, user *types.UserWithRole) error {
	return setEntry(ctx, s.cache, "user_by_id", userByIDPrefix+user.ID, user)
}

func (s *UserStore) DeleteByID(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, userByIDPrefix+id)
}

func (s *UserStore) ClearByID(ctx context.Context) error {
	return clearPrefix(ctx, s.cache, "user_by_id", userByIDPrefix)
}

func (s *UserStore) GetListing(ctx context.Context, page int, filters url.Values) (*types.UserPage, bool, error) {
	key := ListingKey(userListingPrefix, page, filters)
	return getEntry[types.UserPage](ctx, s.cache, "user_listing", key)
}

func (s *UserStore) SetListing(ctx context.Context, page int, filters url.Values, listing *types.UserPage) error {
	key := ListingKey(userListingPrefix, page, filters)
	return setEntry(ctx, s.cache, "user_listing", key, listing)
}

func (s *UserStore) ClearListings(ctx context.Context) error {
	return clearPrefix(ctx, s.cache, "user_listing", userListingPrefix)
}
