package middleware

import (
	"net/http"
	"strings"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

const (
	ctxClaims   = "claims"
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxRole     = "role"
)

// TokenValidator is the part of AuthService the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// OptionalAuth sets the caller's identity when a valid token is present and
// lets anonymous requests through. An invalid token is treated as anonymous.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := validator.ValidateToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// AuthMiddleware requires a valid token in the Authorization header or the
// access_token cookie.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// RequireAuth rejects requests that OptionalAuth left anonymous.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRole checks if the user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if role := c.GetString(ctxRole); role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "insufficient permissions",
				"required": requiredRole,
				"current":  role,
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin is a convenience function for requiring admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// UserID is "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func Username(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == models.RoleAdmin
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(ctxClaims, claims)
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRole, claims.Role)
}

// tokenFromRequest prefers "Authorization: Bearer <token>" over the cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}
