package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamdir/teamdir/pkg/retry"
	"github.com/teamdir/teamdir/pkg/types"
)

func TestRoleService_GetRoleByID(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.fake.roles["r1"] = types.Role{ID: "r1", Name: "Admin"}

	got, err := s.roles.GetRoleByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Admin", got.Name)
	assert.Equal(t, 1, s.fake.callCount("FetchRole"))

	// second read is served from cache
	got, err = s.roles.GetRoleByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Admin", got.Name)
	assert.Equal(t, 1, s.fake.callCount("FetchRole"))
}

func TestRoleService_GetRoleByID_NotFound(t *testing.T) {
	s := newTestServices(t, retry.WithAttempts(1))

	_, err := s.roles.GetRoleByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRoleService_GetRoleByID_RetriesFetch(t *testing.T) {
	s := newTestServices(t)
	s.fake.fetchRoleErr["r1"] = errors.New("upstream down")

	_, err := s.roles.GetRoleByID(context.Background(), "r1")
	require.Error(t, err)
	assert.Equal(t, 3, s.fake.callCount("FetchRole"))
}

func TestRoleService_GetRoles(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.fake.roles["r1"] = types.Role{ID: "r1", Name: "Admin"}
	s.fake.roles["r2"] = types.Role{ID: "r2", Name: "Member"}

	got, err := s.roles.GetRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)
	assert.Len(t, got.Data, 2)
	assert.Equal(t, 1, s.fake.callCount("FetchRoles"))

	// same page and filters: cache hit
	_, err = s.roles.GetRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.fake.callCount("FetchRoles"))

	// different filters: separate entry, separate fetch
	_, err = s.roles.GetRoles(ctx, 1, types.Filters{Search: "adm"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.fake.callCount("FetchRoles"))
}

func TestRoleService_GetRoles_FetchFails(t *testing.T) {
	s := newTestServices(t)
	s.fake.fetchRolesErr = errors.New("upstream down")

	_, err := s.roles.GetRoles(context.Background(), 1, types.Filters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch roles")
	assert.Equal(t, 3, s.fake.callCount("FetchRoles"))
}

func TestRoleService_CreateRole(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.fake.roles["r1"] = types.Role{ID: "r1", Name: "Admin"}

	// prime the listing cache
	_, err := s.roles.GetRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)
	require.Equal(t, 1, s.fake.callCount("FetchRoles"))

	created, err := s.roles.CreateRole(ctx, &types.RoleParams{Name: strPtr("Viewer")})
	require.NoError(t, err)
	assert.Equal(t, "Viewer", created.Name)

	// listings were cleared: the next read refetches and sees the new role
	listing, err := s.roles.GetRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 2, s.fake.callCount("FetchRoles"))
	assert.Len(t, listing.Data, 2)

	// the created role was seeded by id, no fetch needed
	got, err := s.roles.GetRoleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Viewer", got.Name)
	assert.Equal(t, 0, s.fake.callCount("FetchRole"))
}

func TestRoleService_CreateRole_NotRetried(t *testing.T) {
	s := newTestServices(t)
	s.fake.createRoleErr = errors.New("upstream down")

	_, err := s.roles.CreateRole(context.Background(), &types.RoleParams{Name: strPtr("Viewer")})
	require.Error(t, err)
	assert.Equal(t, 1, s.fake.callCount("CreateRole"))
}

func TestRoleService_UpdateRole(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.fake.roles["r1"] = types.Role{ID: "r1", Name: "Admin"}
	s.fake.users["u1"] = types.User{ID: "u1", First: "Ada", RoleID: "r1"}

	// prime every dependent cache space
	_, err := s.roles.GetRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)
	_, err = s.users.GetUsersWithRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)
	_, err = s.roles.GetRoleByID(ctx, "r1")
	require.NoError(t, err)

	updated, err := s.roles.UpdateRole(ctx, "r1", &types.RoleParams{Name: strPtr("Administrator")})
	require.NoError(t, err)
	assert.Equal(t, "Administrator", updated.Name)

	// role listings, user listings and enriched users are all stale now
	_, found, err := s.store.Role.GetListing(ctx, 1, url.Values{})
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = s.store.User.GetListing(ctx, 1, url.Values{})
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = s.store.User.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	// the by-id entry was refreshed in place, not dropped: the only fetch
	// was the one enrichment did while priming
	got, err := s.roles.GetRoleByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", got.Name)
	assert.Equal(t, 1, s.fake.callCount("FetchRole"))
}

func TestRoleService_UpdateRole_NotFound(t *testing.T) {
	s := newTestServices(t)

	_, err := s.roles.UpdateRole(context.Background(), "missing", &types.RoleParams{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrRoleNotFound)
	assert.Equal(t, 1, s.fake.callCount("UpdateRole"))
}

func TestRoleService_DeleteRole(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.fake.roles["r1"] = types.Role{ID: "r1", Name: "Admin"}

	_, err := s.roles.GetRoleByID(ctx, "r1")
	require.NoError(t, err)
	_, err = s.roles.GetRoles(ctx, 1, types.Filters{})
	require.NoError(t, err)

	require.NoError(t, s.roles.DeleteRole(ctx, "r1"))

	_, found, err := s.store.Role.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = s.store.Role.GetListing(ctx, 1, url.Values{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRoleService_DeleteRole_NotFound(t *testing.T) {
	s := newTestServices(t)

	err := s.roles.DeleteRole(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
