package service

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamdir/teamdir/pkg/cache"
	"github.com/teamdir/teamdir/pkg/cache/inmemory"
	"github.com/teamdir/teamdir/pkg/clients/directory"
	"github.com/teamdir/teamdir/pkg/retry"
	"github.com/teamdir/teamdir/pkg/store"
	"github.com/teamdir/teamdir/pkg/types"
)

// fakeDirectory is an in-memory stand-in for the upstream API that counts
// every call, so tests can assert which operations hit the network.
type fakeDirectory struct {
	roles map[string]types.Role
	users map[string]types.User

	// rolesListing, when set, overrides the page FetchRoles returns.
	rolesListing *types.RolePage

	fetchRolesErr error
	fetchUsersErr error
	fetchRoleErr  map[string]error
	createRoleErr error
	createUserErr error

	calls map[string]int
}

var _ directory.Client = (*fakeDirectory)(nil)

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		roles:        make(map[string]types.Role),
		users:        make(map[string]types.User),
		fetchRoleErr: make(map[string]error),
		calls:        make(map[string]int),
	}
}

func (f *fakeDirectory) callCount(name string) int {
	return f.calls[name]
}

func (f *fakeDirectory) FetchRoles(_ context.Context, page int, _ url.Values) (*types.RolePage, error) {
	f.calls["FetchRoles"]++
	if f.fetchRolesErr != nil {
		return nil, f.fetchRolesErr
	}
	if f.rolesListing != nil {
		return f.rolesListing, nil
	}
	listing := &types.RolePage{Data: []types.Role{}}
	for _, id := range slices.Sorted(maps.Keys(f.roles)) {
		listing.Data = append(listing.Data, f.roles[id])
	}
	return listing, nil
}

func (f *fakeDirectory) FetchRole(_ context.Context, id string) (*types.Role, error) {
	f.calls["FetchRole"]++
	if err := f.fetchRoleErr[id]; err != nil {
		return nil, err
	}
	role, ok := f.roles[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return &role, nil
}

func (f *fakeDirectory) CreateRole(_ context.Context, params *types.RoleParams) (*types.Role, error) {
	f.calls["CreateRole"]++
	if f.createRoleErr != nil {
		return nil, f.createRoleErr
	}
	role := types.Role{ID: fmt.Sprintf("role-%d", len(f.roles)+1)}
	applyRoleParams(&role, params)
	f.roles[role.ID] = role
	return &role, nil
}

func (f *fakeDirectory) UpdateRole(_ context.Context, id string, params *types.RoleParams) (*types.Role, error) {
	f.calls["UpdateRole"]++
	role, ok := f.roles[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	applyRoleParams(&role, params)
	f.roles[id] = role
	return &role, nil
}

func (f *fakeDirectory) DeleteRole(_ context.Context, id string) error {
	f.calls["DeleteRole"]++
	if _, ok := f.roles[id]; !ok {
		return directory.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeDirectory) FetchUsers(_ context.Context, page int, _ url.Values) (*types.Page[types.User], error) {
	f.calls["FetchUsers"]++
	if f.fetchUsersErr != nil {
		return nil, f.fetchUsersErr
	}
	listing := &types.Page[types.User]{Data: []types.User{}}
	for _, id := range slices.Sorted(maps.Keys(f.users)) {
		listing.Data = append(listing.Data, f.users[id])
	}
	return listing, nil
}

func (f *fakeDirectory) FetchUser(_ context.Context, id string) (*types.User, error) {
	f.calls["FetchUser"]++
	user, ok := f.users[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return &user, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, params *types.UserParams) (*types.User, error) {
	f.calls["CreateUser"]++
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	user := types.User{ID: fmt.Sprintf("user-%d", len(f.users)+1)}
	applyUserParams(&user, params)
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeDirectory) UpdateUser(_ context.Context, id string, params *types.UserParams) (*types.User, error) {
	f.calls["UpdateUser"]++
	user, ok := f.users[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	applyUserParams(&user, params)
	f.users[id] = user
	return &user, nil
}

func (f *fakeDirectory) DeleteUser(_ context.Context, id string) error {
	f.calls["DeleteUser"]++
	if _, ok := f.users[id]; !ok {
		return directory.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func applyRoleParams(role *types.Role, params *types.RoleParams) {
	if params.Name != nil {
		role.Name = *params.Name
	}
	if params.Description != nil {
		role.Description = *params.Description
	}
	if params.IsDefault != nil {
		role.IsDefault = *params.IsDefault
	}
}

func applyUserParams(user *types.User, params *types.UserParams) {
	if params.First != nil {
		user.First = *params.First
	}
	if params.Last != nil {
		user.Last = *params.Last
	}
	if params.RoleID != nil {
		user.RoleID = *params.RoleID
	}
	if params.Photo != nil {
		user.Photo = *params.Photo
	}
}

type testServices struct {
	roles RoleService
	users UserService
	fake  *fakeDirectory
	store *store.Store
	cache cache.Cache
}

func newTestServices(t *testing.T, retryOpts ...retry.Option) *testServices {
	t.Helper()

	c, err := inmemory.NewCache(&inmemory.Config{
		DefaultExpiration: 300,
		CleanupInterval:   600,
	})
	require.NoError(t, err)

	if len(retryOpts) == 0 {
		retryOpts = []retry.Option{
			retry.WithAttempts(3),
			retry.WithBaseDelay(time.Millisecond),
		}
	}

	fake := newFakeDirectory()
	dataStore := store.New(c)
	roles := NewRoleService(fake, dataStore, retryOpts...)
	users := NewUserService(fake, roles, dataStore, retryOpts...)

	return &testServices{
		roles: roles,
		users: users,
		fake:  fake,
		store: dataStore,
		cache: c,
	}
}

func strPtr(s string) *string { return &s }
