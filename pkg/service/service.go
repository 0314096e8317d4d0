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

// Package service holds the role and user access layers: cache-aside reads
// with retried fetches, unretried mutations and explicit invalidation.
package service

import (
	"context"
	"errors"

	"github.com/teamdir/teamdir/pkg/types"
)

var (
	// ErrRoleNotFound reports that the upstream API has no such role.
	ErrRoleNotFound = errors.New("role not found")
	// ErrUserNotFound reports that the upstream API has no such user.
	ErrUserNotFound = errors.New("user not found")
)

// RoleService manages roles against the upstream API.
type RoleService interface {
	GetRoleByID(ctx context.Context, id string) (*types.Role, error)
	GetRoles(ctx context.Context, page int, filters types.Filters) (*types.RolePage, error)
	CreateRole(ctx context.Context, params *types.RoleParams) (*types.Role, error)
	UpdateRole(ctx context.Context, id string, params *types.RoleParams) (*types.Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// UserService manages users against the upstream API, enriching every
// returned record with its resolved role.
type UserService interface {
	GetUsersWithRoles(ctx context.Context, page int, filters types.Filters) (*types.UserPage, error)
	GetUserByID(ctx context.Context, id string) (*types.UserWithRole, error)
	CreateUser(ctx context.Context, params *types.UserParams) (*types.UserWithRole, error)
	UpdateUser(ctx context.Context, id string, params *types.UserParams) (*types.UserWithRole, error)
	DeleteUser(ctx context.Context, id string) error
}
