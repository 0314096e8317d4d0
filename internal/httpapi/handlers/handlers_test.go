package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/teamdir/teamdir/pkg/config"
	"github.com/teamdir/teamdir/pkg/service"
	"github.com/teamdir/teamdir/pkg/types"
)

// stubRoleService and stubUserService let each test pin exactly the calls a
// handler is expected to make.
type stubRoleService struct {
	getRoleByID func(ctx context.Context, id string) (*types.Role, error)
	getRoles    func(ctx context.Context, page int, filters types.Filters) (*types.RolePage, error)
	createRole  func(ctx context.Context, params *types.RoleParams) (*types.Role, error)
	updateRole  func(ctx context.Context, id string, params *types.RoleParams) (*types.Role, error)
	deleteRole  func(ctx context.Context, id string) error
}

func (s *stubRoleService) GetRoleByID(ctx context.Context, id string) (*types.Role, error) {
	return s.getRoleByID(ctx, id)
}

func (s *stubRoleService) GetRoles(ctx context.Context, page int, filters types.Filters) (*types.RolePage, error) {
	return s.getRoles(ctx, page, filters)
}

func (s *stubRoleService) CreateRole(ctx context.Context, params *types.RoleParams) (*types.Role, error) {
	return s.createRole(ctx, params)
}

func (s *stubRoleService) UpdateRole(ctx context.Context, id string, params *types.RoleParams) (*types.Role, error) {
	return s.updateRole(ctx, id, params)
}

func (s *stubRoleService) DeleteRole(ctx context.Context, id string) error {
	return s.deleteRole(ctx, id)
}

type stubUserService struct {
	getUsersWithRoles func(ctx context.Context, page int, filters types.Filters) (*types.UserPage, error)
	getUserByID       func(ctx context.Context, id string) (*types.UserWithRole, error)
	createUser        func(ctx context.Context, params *types.UserParams) (*types.UserWithRole, error)
	updateUser        func(ctx context.Context, id string, params *types.UserParams) (*types.UserWithRole, error)
	deleteUser        func(ctx context.Context, id string) error
}

func (s *stubUserService) GetUsersWithRoles(ctx context.Context, page int, filters types.Filters) (*types.UserPage, error) {
	return s.getUsersWithRoles(ctx, page, filters)
}

func (s *stubUserService) GetUserByID(ctx context.Context, id string) (*types.UserWithRole, error) {
	return s.getUserByID(ctx, id)
}

func (s *stubUserService) CreateUser(ctx context.Context, params *types.UserParams) (*types.UserWithRole, error) {
	return s.createUser(ctx, params)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, params *types.UserParams) (*types.UserWithRole, error) {
	return s.updateUser(ctx, id, params)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteUser(ctx, id)
}

func newTestRouter(roles service.RoleService, users service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{}
	cfg.App.Name = "teamdir"
	h := NewHandlers(cfg, roles, users)

	router := gin.New()
	router.GET("/status", h.Status)
	router.GET("/roles", h.ListRoles)
	router.GET("/roles/:id", h.GetRole)
	router.POST("/roles", h.CreateRole)
	router.PATCH("/roles/:id", h.UpdateRole)
	router.DELETE("/roles/:id", h.DeleteRole)
	router.GET("/users", h.ListUsers)
	router.GET("/users/:id", h.GetUser)
	router.POST("/users", h.CreateUser)
	router.PATCH("/users/:id", h.UpdateUser)
	router.DELETE("/users/:id", h.DeleteUser)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStatus(t *testing.T) {
	router := newTestRouter(&stubRoleService{}, &stubUserService{})

	w := doRequest(router, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"running"`)
	assert.Contains(t, w.Body.String(), `"teamdir"`)
}

func TestListRoles(t *testing.T) {
	var gotPage int
	var gotFilters types.Filters
	roles := &stubRoleService{
		getRoles: func(_ context.Context, page int, filters types.Filters) (*types.RolePage, error) {
			gotPage = page
			gotFilters = filters
			return &types.RolePage{Data: []types.Role{{ID: "r1", Name: "Admin"}}}, nil
		},
	}
	router := newTestRouter(roles, &stubUserService{})

	w := doRequest(router, http.MethodGet, "/roles?page=2&search=adm", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, "adm", gotFilters.Search)
	assert.Contains(t, w.Body.String(), `"Admin"`)
}

func TestListRoles_DefaultsToFirstPage(t *testing.T) {
	var gotPage int
	roles := &stubRoleService{
		getRoles: func(_ context.Context, page int, _ types.Filters) (*types.RolePage, error) {
			gotPage = page
			return &types.RolePage{}, nil
		},
	}
	router := newTestRouter(roles, &stubUserService{})

	w := doRequest(router, http.MethodGet, "/roles", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gotPage)
}

func TestListRoles_BadPage(t *testing.T) {
	router := newTestRouter(&stubRoleService{}, &stubUserService{})

	for _, page := range []string{"abc", "0", "-1"} {
		w := doRequest(router, http.MethodGet, "/roles?page="+page, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "page=%s", page)
	}
}

func TestListRoles_UpstreamError(t *testing.T) {
	roles := &stubRoleService{
		getRoles: func(context.Context, int, types.Filters) (*types.RolePage, error) {
			return nil, errors.New("upstream down")
		},
	}
	router := newTestRouter(roles, &stubUserService{})

	w := doRequest(router, http.MethodGet, "/roles", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	// internal detail stays out of the response
	assert.NotContains(t, w.Body.String(), "upstream down")
}

func TestGetRole(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", err: nil, wantStatus: http.StatusOK},
		{name: "not found maps to 404", err: service.ErrRoleNotFound, wantStatus: http.StatusNotFound},
		{name: "other errors map to 502", err: errors.New("upstream down"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := &stubRoleService{
				getRoleByID: func(_ context.Context, id string) (*types.Role, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &types.Role{ID: id, Name: "Admin"}, nil
				},
			}
			router := newTestRouter(roles, &stubUserService{})

			w := doRequest(router, http.MethodGet, "/roles/r1", "")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCreateRole(t *testing.T) {
	roles := &stubRoleService{
		createRole: func(_ context.Context, params *types.RoleParams) (*types.Role, error) {
			return &types.Role{ID: "r9", Name: *params.Name}, nil
		},
	}
	router := newTestRouter(roles, &stubUserService{})

	w := doRequest(router, http.MethodPost, "/roles", `{"name":"Viewer"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"Viewer"`)
}

func TestCreateRole_InvalidPayload(t *testing.T) {
	router := newTestRouter(&stubRoleService{}, &stubUserService{})

	w := doRequest(router, http.MethodPost, "/roles", `{invalid`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRole_NotFound(t *testing.T) {
	roles := &stubRoleService{
		updateRole: func(context.Context, string, *types.RoleParams) (*types.Role, error) {
			return nil, service.ErrRoleNotFound
		},
	}
	router := newTestRouter(roles, &stubUserService{})

	w := doRequest(router, http.MethodPatch, "/roles/missing", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRole(t *testing.T) {
	var gotID string
	roles := &stubRoleService{
		deleteRole: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	router := newTestRouter(roles, &stubUserService{})

	w := doRequest(router, http.MethodDelete, "/roles/r1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "r1", gotID)
}

func TestListUsers(t *testing.T) {
	users := &stubUserService{
		getUsersWithRoles: func(_ context.Context, page int, _ types.Filters) (*types.UserPage, error) {
			return &types.UserPage{Data: []types.UserWithRole{
				{ID: "u1", First: "Ada", Role: &types.Role{ID: "r1", Name: "Admin"}},
			}}, nil
		},
	}
	router := newTestRouter(&stubRoleService{}, users)

	w := doRequest(router, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Ada"`)
	assert.Contains(t, w.Body.String(), `"Admin"`)
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", err: nil, wantStatus: http.StatusOK},
		{name: "not found maps to 404", err: service.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "other errors map to 502", err: errors.New("upstream down"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserService{
				getUserByID: func(_ context.Context, id string) (*types.UserWithRole, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &types.UserWithRole{ID: id, First: "Ada"}, nil
				},
			}
			router := newTestRouter(&stubRoleService{}, users)

			w := doRequest(router, http.MethodGet, "/users/u1", "")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCreateUser(t *testing.T) {
	users := &stubUserService{
		createUser: func(_ context.Context, params *types.UserParams) (*types.UserWithRole, error) {
			return &types.UserWithRole{ID: "u9", First: *params.First}, nil
		},
	}
	router := newTestRouter(&stubRoleService{}, users)

	w := doRequest(router, http.MethodPost, "/users", `{"first":"Bob","roleId":"r1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"u9"`)
}

func TestUpdateUser_NotFound(t *testing.T) {
	users := &stubUserService{
		updateUser: func(context.Context, string, *types.UserParams) (*types.UserWithRole, error) {
			return nil, service.ErrUserNotFound
		},
	}
	router := newTestRouter(&stubRoleService{}, users)

	w := doRequest(router, http.MethodPatch, "/users/missing", `{"first":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	users := &stubUserService{
		deleteUser: func(_ context.Context, id string) error {
			return nil
		},
	}
	router := newTestRouter(&stubRoleService{}, users)

	w := doRequest(router, http.MethodDelete, "/users/u1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := &stubUserService{
		deleteUser: func(context.Context, string) error {
			return service.ErrUserNotFound
		},
	}
	router := newTestRouter(&stubRoleService{}, users)

	w := doRequest(router, http.MethodDelete, "/users/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
