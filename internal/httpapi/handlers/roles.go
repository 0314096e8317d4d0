package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamdir/teamdir/pkg/logger"
	"github.com/teamdir/teamdir/pkg/service"
	"github.com/teamdir/teamdir/pkg/types"
)

// ListRoles returns one page of roles, filtered by the search parameter.
func (h *Handlers) ListRoles(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	listing, err := h.roles.GetRoles(c.Request.Context(), page, filtersParam(c))
	if err != nil {
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to fetch roles")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch roles"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *Handlers) GetRole(c *gin.Context) {
	id := c.Param("id")

	role, err := h.roles.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to fetch role")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch role"})
		return
	}

	c.JSON(http.StatusOK, role)
}

func (h *Handlers) CreateRole(c *gin.Context) {
	params := &types.RoleParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role payload"})
		return
	}

	role, err := h.roles.CreateRole(c.Request.Context(), params)
	if err != nil {
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to create role")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create role"})
		return
	}

	c.JSON(http.StatusCreated, role)
}

func (h *Handlers) UpdateRole(c *gin.Context) {
	id := c.Param("id")

	params := &types.RoleParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role payload"})
		return
	}

	role, err := h.roles.UpdateRole(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to update role")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update role"})
		return
	}

	c.JSON(http.StatusOK, role)
}

func (h *Handlers) DeleteRole(c *gin.Context) {
	id := c.Param("id")

	if err := h.roles.DeleteRole(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		logger.Logger(c.Request.Context()).WithError(err).Error("failed to delete role")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete role"})
		return
	}

	c.Status(http.StatusNoContent)
}
