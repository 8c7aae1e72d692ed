package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reposekdz/eastgate-sub004/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextStaffID = "staffId"
	ContextRole    = "staffRole"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireStaff rejects requests without a valid staff token. When
// roles are given, the token's role must be one of them.
func RequireStaff(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authorization token required")
			c.Abort()
			return
		}
		claims, err := utils.ParseAccessToken(secret, token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "invalid or expired token")
			c.Abort()
			return
		}
		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				utils.JSONError(c, http.StatusForbidden, "error.forbidden", "insufficient role")
				c.Abort()
				return
			}
		}
		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalStaff records staff identity when a valid token is present
// and lets the request through either way. Handlers that allow "owner
// or staff" check the context afterwards.
func OptionalStaff(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := utils.ParseAccessToken(secret, token); err == nil {
				c.Set(ContextStaffID, claims.StaffID)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// IsStaff reports whether an earlier auth middleware identified the
// caller as staff.
func IsStaff(c *gin.Context) bool {
	_, ok := c.Get(ContextStaffID)
	return ok
}
