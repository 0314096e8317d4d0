package store

import (
	"context"
	"net/url"

	"github.com/teamdir/teamdir/pkg/types"
)

// RoleStoreInterface defines the role-side cache operations.
// This interface enables mocking in tests and lets a bounded or distributed
// cache replace the default one without touching the access layers.
type RoleStoreInterface interface {
	// GetByID returns the cached role and whether it was present.
	// A miss is (nil, false, nil); errors mean the entry was unreadable.
	GetByID(ctx context.Context, id string) (*types.Role, bool, error)

	// SetByID caches a role under its id.
	SetByID(ctx context.Context, role *types.Role) error

	// DeleteByID removes the single role entry for id.
	DeleteByID(ctx context.Context, id string) error

	// GetListing returns the cached page for (page, filters).
	GetListing(ctx context.Context, page int, filters url.Values) (*types.RolePage, bool, error)

	// SetListing caches a page under its (page, filters) key.
	SetListing(ctx context.Context, page int, filters url.Values, listing *types.RolePage) error

	// ClearListings drops every cached role listing, all pagination and
	// filter combinations at once.
	ClearListings(ctx context.Context) error
}

// UserStoreInterface defines the user-side cache operations. Cached users
// are the enriched shape; raw upstream users are never stored.
type UserStoreInterface interface {
	GetByID(ctx context.Context, id string) (*types.UserWithRole, bool, error)

	SetByID(ctx context.Context, user *types.UserWithRole) error

	DeleteByID(ctx context.Context, id string) error

	// ClearByID drops every cached user entry. Role mutations need this:
	// a role's display fields are embedded in enriched users.
	ClearByID(ctx context.Context) error

	GetListing(ctx context.Context, page int, filters url.Values) (*types.UserPage, bool, error)

	SetListing(ctx context.Context, page int, filters url.Values, listing *types.UserPage) error

	ClearListings(ctx context.Context) error
}
