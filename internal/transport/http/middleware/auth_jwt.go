package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estate-api/internal/core/auth"
	"estate-api/internal/domain"
	"estate-api/internal/repo"
	resp "estate-api/internal/transport/http/response"
)

// gin context key，处理器通过 CurrentUser 取
const KeyUser = "currentUser"

// Authenticate 解析 Bearer token 并加载用户；停用账号直接拒绝
func Authenticate(j *auth.JWTer, users *repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortFail(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			if auth.IsExpired(err) {
				resp.AbortFail(c, http.StatusUnauthorized, "Token expired.")
				return
			}
			resp.AbortFail(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.UID)
		if err != nil {
			resp.AbortFail(c, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if u == nil {
			resp.AbortFail(c, http.StatusUnauthorized, "Invalid token. User not found.")
			return
		}
		if !u.IsActive {
			resp.AbortFail(c, http.StatusUnauthorized, "Account is deactivated.")
			return
		}

		c.Set(KeyUser, u)
		c.Next()
	}
}

// RequireAdmin 必须先过 Authenticate
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin() {
			resp.AbortFail(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
