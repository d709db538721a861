package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey is the session value holding the signed-in user's id.
const SessionUserKey = "user_id"

// ContextUserKey is the gin context key the middleware stores the user id
// under.
const ContextUserKey = "user_id"

// RequireAuth redirects to the login page unless the session carries a
// signed-in user id. There is no token expiry beyond the cookie's max age
// and no role distinction.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserKey)
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, userID.(uint))
	}
}

// UserID returns the authenticated user's id from the gin context. It
// panics if RequireAuth did not run, which would be a routing bug.
func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserKey).(uint)
}
