package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/teamdir/teamdir/pkg/logger"
	"github.com/teamdir/teamdir/pkg/types"
)

// FetchRoles fetches one page of roles with the given filters applied.
func (dc *DirectoryClient) FetchRoles(ctx context.Context, page int, filters url.Values) (*types.RolePage, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"page":    page,
	})
	log.Debug("fetching roles")

	response, _, err := dc.sendRequest(ctx,
		dc.listingURL("roles", page, filters),
		http.MethodGet, nil, "directory.FetchRoles")
	if err != nil {
		log.WithError(err).Error("error fetching roles")
		return nil, err
	}

	listing := &types.RolePage{}
	if err := json.Unmarshal(response, listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roles listing: %w", err)
	}

	log.WithField("count", len(listing.Data)).Debug("found roles")
	return listing, nil
}

// FetchRole fetches a single role by its ID.
func (dc *DirectoryClient) FetchRole(ctx context.Context, id string) (*types.Role, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"roleID":  id,
	})
	log.Debug("fetching role by ID")

	response, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/roles/%s", dc.baseURL, url.PathEscape(id)),
		http.MethodGet, nil, "directory.FetchRole")
	if err != nil {
		log.WithError(err).Error("error fetching role")
		return nil, err
	}

	role := &types.Role{}
	if err := json.Unmarshal(response, role); err != nil {
		return nil, fmt.Errorf("failed to unmarshal role: %w", err)
	}

	return role, nil
}

// CreateRole creates a new role.
func (dc *DirectoryClient) CreateRole(ctx context.Context, params *types.RoleParams) (*types.Role, error) {
	log := logger.Logger(ctx).WithField("service", "directory")
	log.Info("creating role")

	response, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/roles", dc.baseURL),
		http.MethodPost, params, "directory.CreateRole")
	if err != nil {
		log.WithError(err).Error("error creating role")
		return nil, err
	}

	role := &types.Role{}
	if err := json.Unmarshal(response, role); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created role: %w", err)
	}

	log.WithField("roleID", role.ID).Info("role created")
	return role, nil
}

// UpdateRole applies a partial update to a role.
func (dc *DirectoryClient) UpdateRole(ctx context.Context, id string, params *types.RoleParams) (*types.Role, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"roleID":  id,
	})
	log.Info("updating role")

	response, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/roles/%s", dc.baseURL, url.PathEscape(id)),
		http.MethodPatch, params, "directory.UpdateRole")
	if err != nil {
		log.WithError(err).Error("error updating role")
		return nil, err
	}

	role := &types.Role{}
	if err := json.Unmarshal(response, role); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated role: %w", err)
	}

	return role, nil
}

// DeleteRole deletes a role by its ID.
func (dc *DirectoryClient) DeleteRole(ctx context.Context, id string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"roleID":  id,
	})
	log.Info("deleting role")

	if _, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/roles/%s", dc.baseURL, url.PathEscape(id)),
		http.MethodDelete, nil, "directory.DeleteRole"); err != nil {
		log.WithError(err).Error("error deleting role")
		return err
	}

	log.Info("role deleted successfully")
	return nil
}
