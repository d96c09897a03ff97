package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hotelease/models"
	"hotelease/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// RequireAuth verifies the Bearer token and stores the caller's identity
// in the context. Expired tokens answer with code TOKEN_EXPIRED so clients
// know to clear their session; anything else is INVALID_TOKEN.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "INVALID_TOKEN", "access denied: no token provided")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.JSONErrorCode(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "token expired, please login again")
			} else {
				utils.JSONErrorCode(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
			}
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role claim. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ctxUserRole)
		if role != models.RoleAdmin {
			utils.JSONError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id from the context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get(ctxUserRole)
	return role == models.RoleAdmin
}
