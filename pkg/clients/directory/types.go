/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package directory

import (
	"context"
	"errors"
	"net/url"

	"github.com/gojek/heimdall/v7"

	"github.com/teamdir/teamdir/pkg/types"
)

// ErrNotFound reports that the upstream API answered 404 for the resource.
var ErrNotFound = errors.New("resource not found")

// Client is the surface the access layers consume; it exists so tests can
// substitute a counting fake.
type Client interface {
	FetchRoles(ctx context.Context, page int, filters url.Values) (*types.RolePage, error)
	FetchRole(ctx context.Context, id string) (*types.Role, error)
	CreateRole(ctx context.Context, params *types.RoleParams) (*types.Role, error)
	UpdateRole(ctx context.Context, id string, params *types.RoleParams) (*types.Role, error)
	DeleteRole(ctx context.Context, id string) error

	FetchUsers(ctx context.Context, page int, filters url.Values) (*types.Page[types.User], error)
	FetchUser(ctx context.Context, id string) (*types.User, error)
	CreateUser(ctx context.Context, params *types.UserParams) (*types.User, error)
	UpdateUser(ctx context.Context, id string, params *types.UserParams) (*types.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// DirectoryClient is the HTTP client for the upstream directory API.
type DirectoryClient struct {
	client  heimdall.Doer
	baseURL string
}
