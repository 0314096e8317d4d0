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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/teamdir/teamdir/pkg/clients/directory"
	"github.com/teamdir/teamdir/pkg/logger"
	"github.com/teamdir/teamdir/pkg/retry"
	"github.com/teamdir/teamdir/pkg/store"
	"github.com/teamdir/teamdir/pkg/types"
)

type userService struct {
	client    directory.Client
	roles     RoleService
	store     *store.Store
	retryOpts []retry.Option
}

// NewUserService wires the user access layer. Role resolution goes through
// the role service so it shares the role cache.
func NewUserService(client directory.Client, roles RoleService, dataStore *store.Store,
	retryOpts ...retry.Option) UserService {
	return &userService{
		client:    client,
		roles:     roles,
		store:     dataStore,
		retryOpts: retryOpts,
	}
}

func (s *userService) GetUsersWithRoles(ctx context.Context, page int, filters types.Filters) (*types.UserPage, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "users",
		"page":    page,
	})

	values := filters.Values()

	cached, found, err := s.store.User.GetListing(ctx, page, values)
	if err != nil {
		log.WithError(err).Warn("failed to read user listing cache entry")
	}
	if found {
		return cached, nil
	}

	raw, err := retry.Do(ctx, func(ctx context.Context) (*types.Page[types.User], error) {
		return s.client.FetchUsers(ctx, page, values)
	}, s.retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	// Call-scoped role cache: users on one page often share a role, and a
	// shared role must cost one lookup, not one per user.
	pageRoles := make(map[string]*types.Role)
	enriched := make([]types.UserWithRole, 0, len(raw.Data))
	for i := range raw.Data {
		user := &raw.Data[i]

		role, seen := pageRoles[user.RoleID]
		if !seen {
			fetched, err := s.roles.GetRoleByID(ctx, user.RoleID)
			if err != nil {
				// tolerate per-user enrichment failure, keep the page available
				log.WithFields(logrus.Fields{
					"userID": user.ID,
					"roleID": user.RoleID,
				}).WithError(err).Warn("failed to resolve role for user")
			} else {
				role = fetched
				pageRoles[user.RoleID] = role
			}
		}

		enrichedUser := user.WithRole(role)
		if err := s.store.User.SetByID(ctx, enrichedUser); err != nil {
			log.WithError(err).Warn("failed to cache user")
		}
		enriched = append(enriched, *enrichedUser)
	}

	listing := &types.UserPage{
		Data:  enriched,
		Next:  raw.Next,
		Prev:  raw.Prev,
		Pages: raw.Pages,
	}

	if err := s.store.User.SetListing(ctx, page, values, listing); err != nil {
		log.WithError(err).Warn("failed to cache user listing")
	}

	return listing, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*types.UserWithRole, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "users",
		"userID":  id,
	})

	cached, found, err := s.store.User.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("failed to read user cache entry")
	}
	if found {
		return cached, nil
	}

	user, err := retry.Do(ctx, func(ctx context.Context) (*types.User, error) {
		return s.client.FetchUser(ctx, id)
	}, s.retryOpts...)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}

	// Resolves the role by scanning the first roles page, so a role past
	// page one comes back nil. Kept bug-compatible with the dashboard this
	// replaces; the create/update paths do the direct lookup.
	roles, err := s.roles.GetRoles(ctx, 1, types.Filters{})
	if err != nil {
		return nil, err
	}
	var role *types.Role
	for i := range roles.Data {
		if roles.Data[i].ID == user.RoleID {
			role = &roles.Data[i]
			break
		}
	}

	enriched := user.WithRole(role)
	if err := s.store.User.SetByID(ctx, enriched); err != nil {
		log.WithError(err).Warn("failed to cache user")
	}

	return enriched, nil
}

func (s *userService) CreateUser(ctx context.Context, params *types.UserParams) (*types.UserWithRole, error) {
	log := logger.Logger(ctx).WithField("service", "users")

	user, err := s.client.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	role, err := s.roles.GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	enriched := user.WithRole(role)

	if err := s.store.User.ClearListings(ctx); err != nil {
		log.WithError(err).Error("failed to clear user listings after create")
	}
	if err := s.store.User.SetByID(ctx, enriched); err != nil {
		log.WithError(err).Warn("failed to cache created user")
	}

	return enriched, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, params *types.UserParams) (*types.UserWithRole, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "users",
		"userID":  id,
	})

	user, err := s.client.UpdateUser(ctx, id, params)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	role, err := s.roles.GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	enriched := user.WithRole(role)

	if err := s.store.User.ClearListings(ctx); err != nil {
		log.WithError(err).Error("failed to clear user listings after update")
	}
	if err := s.store.User.SetByID(ctx, enriched); err != nil {
		log.WithError(err).Warn("failed to cache updated user")
	}

	return enriched, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "users",
		"userID":  id,
	})

	if err := s.client.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	if err := s.store.User.ClearListings(ctx); err != nil {
		log.WithError(err).Error("failed to clear user listings after delete")
	}
	if err := s.store.User.DeleteByID(ctx, id); err != nil {
		log.WithError(err).Error("failed to delete cached user")
	}

	return nil
}
