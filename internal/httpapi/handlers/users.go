package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamdir/teamdir/pkg/logger"
	"github.com/teamdir/teamdir/pkg/service"
	"github.com/teamdir/teamdir/pkg/types"
)

// ListUsers returns one page of users, each enriched with its resolved role.
func (h *Handlers) ListUsers(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	listing, err := h.users.GetUsersWithRoles(c.Request.Context(), page, filtersParam(c))
	if err != nil {
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to fetch users")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *Handlers) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to fetch user")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) CreateUser(c *gin.Context) {
	params := &types.UserParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), params)
	if err != nil {
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to create user")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	params := &types.UserParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to update user")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to delete user")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}
