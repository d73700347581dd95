package middleware

import (
	"strings"

	"file-vault/controller/respond"
	"file-vault/service/user_service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	CtxUserID   = "userId"
	CtxUserUuid = "userUuid"
)

// Auth validates the bearer token and stores the caller identity on the
// request context
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Unauthorized(c, "authorization header is required")
			c.Abort()
			return
		}

		claims, err := user_service.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respond.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserUuid, claims.UserUuid)
		c.Next()
	}
}

// UserID returns the authenticated caller's numeric id, 0 when absent
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// UserUuid returns the authenticated caller's uuid, empty when absent
func UserUuid(c *gin.Context) string {
	if v, ok := c.Get(CtxUserUuid); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
