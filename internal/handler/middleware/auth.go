package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"course-checkout/internal/domain/user"
	"course-checkout/internal/pkg/cookie"
	"course-checkout/internal/usecase"
	"course-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// bearerToken prefers the cookie the storefront sets after checkout.
func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *gin.Context) error {
	userID, role, err := m.tokenValidator.ValidateToken(bearerToken(c))
	if err != nil {
		return err
	}
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, role)
	return nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Access token required"}})
			return
		}
		if err := m.authenticate(c); err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the caller when a valid token is present. A missing or
// invalid token lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) != "" {
			if err := m.authenticate(c); err != nil {
				slog.Debug("ignoring invalid token on optional auth route", "error", err.Error())
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := GetUserRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
			return
		}
		if current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Insufficient permissions"}})
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetViewer builds the read-side caller from the authenticated context.
func GetViewer(c *gin.Context) (queries.Viewer, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return queries.Viewer{}, false
	}
	role, _ := GetUserRole(c)
	return queries.Viewer{UserID: id, IsAdmin: role == user.RoleAdmin}, true
}
