package authorization

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/testutil"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(testutil.SilentLogger())
	require.NoError(t, err)
	return e
}

func TestEnforceRole(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		name    string
		role    string
		path    string
		method  string
		allowed bool
	}{
		{name: "reader browses books", role: RoleNormal, path: "/api/v1/books", method: http.MethodGet, allowed: true},
		{name: "reader opens one book", role: RoleNormal, path: "/api/v1/books/42", method: http.MethodGet, allowed: true},
		{name: "reader rates a book", role: RoleNormal, path: "/api/v1/books/42/rating", method: http.MethodPut, allowed: true},
		{name: "reader manages lists", role: RoleNormal, path: "/api/v1/lists/7/books", method: http.MethodPost, allowed: true},
		{name: "reader applies for verification", role: RoleNormal, path: "/api/v1/verification", method: http.MethodPost, allowed: true},
		{name: "reader cannot submit books", role: RoleNormal, path: "/api/v1/author/books", method: http.MethodPost, allowed: false},
		{name: "reader cannot reach admin", role: RoleNormal, path: "/api/v1/admin/stats", method: http.MethodGet, allowed: false},

		{name: "author submits books", role: RoleAuthor, path: "/api/v1/author/books", method: http.MethodPost, allowed: true},
		{name: "author inherits reader routes", role: RoleAuthor, path: "/api/v1/books/42", method: http.MethodGet, allowed: true},
		{name: "author cannot reach admin", role: RoleAuthor, path: "/api/v1/admin/books/pending", method: http.MethodGet, allowed: false},

		{name: "admin moderates books", role: RoleAdmin, path: "/api/v1/admin/books/42/approve", method: http.MethodPost, allowed: true},
		{name: "admin inherits author routes", role: RoleAdmin, path: "/api/v1/author/books", method: http.MethodGet, allowed: true},
		{name: "admin inherits reader routes", role: RoleAdmin, path: "/api/v1/books", method: http.MethodGet, allowed: true},

		{name: "unknown role gets nothing", role: "superuser", path: "/api/v1/books", method: http.MethodGet, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := e.EnforceRole(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestFormatRole(t *testing.T) {
	assert.Equal(t, "role:admin", FormatRole(RoleAdmin))
}

func TestIsValidRole(t *testing.T) {
	for _, role := range ValidRoles() {
		assert.True(t, IsValidRole(role))
	}
	assert.False(t, IsValidRole("superuser"))
	assert.False(t, IsValidRole(""))
}
