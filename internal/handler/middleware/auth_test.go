package middleware_test

import (
	"net/http"
	"testing"

	"course-checkout/internal/domain/user"
	"course-checkout/internal/handler/middleware"
	"course-checkout/internal/pkg/jwt"
	"course-checkout/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
}

func (v stubValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	switch token {
	case "customer-token":
		return v.userID, user.RoleCustomer, nil
	case "admin-token":
		return v.userID, user.RoleAdmin, nil
	default:
		return uuid.Nil, "", jwt.ErrInvalidToken
	}
}

func newRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	id := uuid.New()
	m := middleware.NewAuthMiddleware(stubValidator{userID: id})
	r := gin.New()

	echo := func(c *gin.Context) {
		viewer, ok := middleware.GetViewer(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "userId": viewer.UserID.String(), "admin": viewer.IsAdmin})
	}
	r.GET("/optional", m.OptionalAuth(), echo)
	r.GET("/required", m.RequireAuth(), echo)
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), echo)
	return r, id
}

type echoBody struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId"`
	Admin         bool   `json:"admin"`
}

func TestOptionalAuth(t *testing.T) {
	r, id := newRouter(t)

	tests := []struct {
		name     string
		token    string
		wantAuth bool
	}{
		{name: "anonymous", token: "", wantAuth: false},
		{name: "valid token", token: "customer-token", wantAuth: true},
		{name: "invalid token passes anonymously", token: "garbage", wantAuth: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, r, http.MethodGet, "/optional", nil, tt.token)

			var body echoBody
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
			assert.Equal(t, tt.wantAuth, body.Authenticated)
			if tt.wantAuth {
				assert.Equal(t, id.String(), body.UserID)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	r, _ := newRouter(t)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/required", nil, "garbage")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token from cookie", func(t *testing.T) {
		rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/required", nil, map[string]string{
			"Cookie": "access_token=customer-token",
		})

		var body echoBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		require.True(t, body.Authenticated)
		assert.False(t, body.Admin)
	})
}

func TestRequireRole(t *testing.T) {
	r, _ := newRouter(t)

	t.Run("customer is forbidden", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "customer-token")
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "admin-token")

		var body echoBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.True(t, body.Admin)
	})
}
