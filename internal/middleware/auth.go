package middleware

import (
	"strings"

	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the server-side session id issued at login.
const SessionCookieName = "testhub_session"

// TryAuth resolves the caller's identity without rejecting anyone. The redis
// session cookie wins; a bearer token is the fallback for API clients that
// don't hold cookies. Requests with neither proceed anonymously and are
// stopped later by RequireAuth where it matters.
func TryAuth(sessions *service.SessionService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID, err := c.Cookie(SessionCookieName); err == nil && sessionID != "" {
			sess, err := sessions.Get(c.Request.Context(), sessionID)
			if err == nil && sess != nil {
				c.Set("user", &util.Claims{
					UserID:  sess.UserID,
					Role:    sess.Role,
					Email:   sess.Email,
					IsAdmin: sess.IsAdmin,
				})
				c.Set("sessionID", sess.ID)
				c.Next()
				return
			}
		}

		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := util.ParseJWT(tokenString, jwtSecret); err == nil {
				c.Set("user", claims)
			}
		}

		c.Next()
	}
}

// RequireAuth rejects anonymous requests. Must run after TryAuth.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetUserFromContext(c) == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly allows role admin or the legacy is_admin token flag.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.HasAdminRights() {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
