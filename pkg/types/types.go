package types

import "net/url"

// Role as the upstream directory API returns it.
// Timestamps stay RFC3339 strings, the API owns their format.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"isDefault"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// User is the raw upstream record, carrying only the role ID.
type User struct {
	ID        string `json:"id"`
	First     string `json:"first"`
	Last      string `json:"last"`
	RoleID    string `json:"roleId"`
	Photo     string `json:"photo"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserWithRole is the read-side composite: the role ID replaced by the
// resolved role, nil when resolution failed. Never sent upstream.
type UserWithRole struct {
	ID        string `json:"id"`
	First     string `json:"first"`
	Last      string `json:"last"`
	Photo     string `json:"photo"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Role      *Role  `json:"role"`
}

// WithRole builds the enriched view of a raw user.
func (u *User) WithRole(role *Role) *UserWithRole {
	return &UserWithRole{
		ID:        u.ID,
		First:     u.First,
		Last:      u.Last,
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Role:      role,
	}
}

// Page is one page of a listing. Absent Next/Prev means no page in that
// direction.
type Page[T any] struct {
	Data  []T  `json:"data"`
	Next  *int `json:"next,omitempty"`
	Prev  *int `json:"prev,omitempty"`
	Pages *int `json:"pages,omitempty"`
}

type (
	RolePage = Page[Role]
	UserPage = Page[UserWithRole]
)

// RoleParams is a partial role payload for create/update calls.
type RoleParams struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDefault   *bool   `json:"isDefault,omitempty"`
}

// UserParams is a partial user payload for create/update calls.
type UserParams struct {
	First  *string `json:"first,omitempty"`
	Last   *string `json:"last,omitempty"`
	RoleID *string `json:"roleId,omitempty"`
	Photo  *string `json:"photo,omitempty"`
}

// Filters holds the listing filters both resources accept.
type Filters struct {
	Search string `json:"search,omitempty" form:"search"`
}

// Values normalizes filters into query parameters. Empty values are dropped
// here, once, so cache keys and outbound URLs always agree on which filters
// are active.
func (f Filters) Values() url.Values {
	values := url.Values{}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}
