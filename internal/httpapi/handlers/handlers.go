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

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamdir/teamdir/pkg/config"
	"github.com/teamdir/teamdir/pkg/service"
	"github.com/teamdir/teamdir/pkg/types"
)

type Handlers struct {
	config *config.AppConfig
	roles  service.RoleService
	users  service.UserService
}

func NewHandlers(cfg *config.AppConfig, roles service.RoleService, users service.UserService) *Handlers {
	return &Handlers{
		config: cfg,
		roles:  roles,
		users:  users,
	}
}

func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.config.App.Name,
		"status":  "running",
	})
}

// pageParam parses the page query parameter, defaulting to the first page.
func pageParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return 0, false
	}
	return page, true
}

func filtersParam(c *gin.Context) types.Filters {
	return types.Filters{
		Search: c.Query("search"),
	}
}
