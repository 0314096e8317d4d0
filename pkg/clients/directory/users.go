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

// FetchUsers fetches one page of raw users. Records carry only the role ID;
// enrichment happens in the user access layer.
func (dc *DirectoryClient) FetchUsers(ctx context.Context, page int, filters url.Values) (*types.Page[types.User], error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"page":    page,
	})
	log.Debug("fetching users")

	response, _, err := dc.sendRequest(ctx,
		dc.listingURL("users", page, filters),
		http.MethodGet, nil, "directory.FetchUsers")
	if err != nil {
		log.WithError(err).Error("error fetching users")
		return nil, err
	}

	listing := &types.Page[types.User]{}
	if err := json.Unmarshal(response, listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users listing: %w", err)
	}

	log.WithField("count", len(listing.Data)).Debug("found users")
	return listing, nil
}

// FetchUser fetches a single raw user by ID.
func (dc *DirectoryClient) FetchUser(ctx context.Context, id string) (*types.User, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"userID":  id,
	})
	log.Debug("fetching user by ID")

	response, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/users/%s", dc.baseURL, url.PathEscape(id)),
		http.MethodGet, nil, "directory.FetchUser")
	if err != nil {
		log.WithError(err).Error("error fetching user")
		return nil, err
	}

	user := &types.User{}
	if err := json.Unmarshal(response, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return user, nil
}

// CreateUser creates a new user.
func (dc *DirectoryClient) CreateUser(ctx context.Context, params *types.UserParams) (*types.User, error) {
	log := logger.Logger(ctx).WithField("service", "directory")
	log.Info("creating user")

	response, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/users", dc.baseURL),
		http.MethodPost, params, "directory.CreateUser")
	if err != nil {
		log.WithError(err).Error("error creating user")
		return nil, err
	}

	user := &types.User{}
	if err := json.Unmarshal(response, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created user: %w", err)
	}

	log.WithField("userID", user.ID).Info("user created")
	return user, nil
}

// UpdateUser applies a partial update to a user.
func (dc *DirectoryClient) UpdateUser(ctx context.Context, id string, params *types.UserParams) (*types.User, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"userID":  id,
	})
	log.Info("updating user")

	response, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/users/%s", dc.baseURL, url.PathEscape(id)),
		http.MethodPatch, params, "directory.UpdateUser")
	if err != nil {
		log.WithError(err).Error("error updating user")
		return nil, err
	}

	user := &types.User{}
	if err := json.Unmarshal(response, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated user: %w", err)
	}

	return user, nil
}

// DeleteUser deletes a user by ID.
func (dc *DirectoryClient) DeleteUser(ctx context.Context, id string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service": "directory",
		"userID":  id,
	})
	log.Info("deleting user")

	if _, _, err := dc.sendRequest(ctx,
		fmt.Sprintf("%s/users/%s", dc.baseURL, url.PathEscape(id)),
		http.MethodDelete, nil, "directory.DeleteUser"); err != nil {
		log.WithError(err).Error("error deleting user")
		return err
	}

	log.Info("user deleted successfully")
	return nil
}
