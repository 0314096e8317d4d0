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

type roleService struct {
	client    directory.Client
	store     *store.Store
	retryOpts []retry.Option
}

// NewRoleService wires the role access layer over the upstream client and
// the shared cache store.
func NewRoleService(client directory.Client, dataStore *store.Store, retryOpts ...retry.Option) RoleService {
	return &roleService{
		client:    client,
		store:     dataStore,
		retryOpts: retryOpts,
	}
}

func (s *roleService) GetRoleByID(ctx context.Context, id string) (*types.Role, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "roles",
		"roleID":  id,
	})

	cached, found, err := s.store.Role.GetByID(ctx, id)
	if err != nil {
		// unreadable cache entry counts as a miss
		log.WithError(err).Warn("failed to read role cache entry")
	}
	if found {
		return cached, nil
	}

	role, err := retry.Do(ctx, func(ctx context.Context) (*types.Role, error) {
		return s.client.FetchRole(ctx, id)
	}, s.retryOpts...)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch role %s: %w", id, err)
	}

	if err := s.store.Role.SetByID(ctx, role); err != nil {
		log.WithError(err).Warn("failed to cache role")
	}

	return role, nil
}

func (s *roleService) GetRoles(ctx context.Context, page int, filters types.Filters) (*types.RolePage, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "roles",
		"page":    page,
	})

	values := filters.Values()

	cached, found, err := s.store.Role.GetListing(ctx, page, values)
	if err != nil {
		log.WithError(err).Warn("failed to read role listing cache entry")
	}
	if found {
		return cached, nil
	}

	listing, err := retry.Do(ctx, func(ctx context.Context) (*types.RolePage, error) {
		return s.client.FetchRoles(ctx, page, values)
	}, s.retryOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	if err := s.store.Role.SetListing(ctx, page, values, listing); err != nil {
		log.WithError(err).Warn("failed to cache role listing")
	}

	return listing, nil
}

func (s *roleService) CreateRole(ctx context.Context, params *types.RoleParams) (*types.Role, error) {
	log := logger.Logger(ctx).WithField("service", "roles")

	role, err := s.client.CreateRole(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	// a new role invalidates every cached listing combination
	if err := s.store.Role.ClearListings(ctx); err != nil {
		log.WithError(err).Error("failed to clear role listings after create")
	}
	if err := s.store.Role.SetByID(ctx, role); err != nil {
		log.WithError(err).Warn("failed to cache created role")
	}

	return role, nil
}

func (s *roleService) UpdateRole(ctx context.Context, id string, params *types.RoleParams) (*types.Role, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "roles",
		"roleID":  id,
	})

	role, err := s.client.UpdateRole(ctx, id, params)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
		}
		return nil, fmt.Errorf("failed to update role %s: %w", id, err)
	}

	s.invalidateRoleDependents(ctx)
	if err := s.store.Role.SetByID(ctx, role); err != nil {
		log.WithError(err).Warn("failed to cache updated role")
	}

	return role, nil
}

func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "roles",
		"roleID":  id,
	})

	if err := s.client.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrRoleNotFound, id)
		}
		return fmt.Errorf("failed to delete role %s: %w", id, err)
	}

	s.invalidateRoleDependents(ctx)
	if err := s.store.Role.DeleteByID(ctx, id); err != nil {
		log.WithError(err).Error("failed to delete cached role")
	}

	return nil
}

// invalidateRoleDependents clears everything a role change can make stale:
// role listings, plus user listings and user-by-id entries, because enriched
// users embed role fields.
func (s *roleService) invalidateRoleDependents(ctx context.Context) {
	log := logger.Logger(ctx).WithField("service", "roles")

	if err := s.store.Role.ClearListings(ctx); err != nil {
		log.WithError(err).Error("failed to clear role listings")
	}
	if err := s.store.User.ClearListings(ctx); err != nil {
		log.WithError(err).Error("failed to clear user listings")
	}
	if err := s.store.User.ClearByID(ctx); err != nil {
		log.WithError(err).Error("failed to clear user entries")
	}
}
