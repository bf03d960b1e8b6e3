package middleware

import (
	"net/http"

	"blogpost/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "user"

// LoadUser resolves the session's user_id against the credential store and
// sets the user on the request context. A stale or missing id fails open to
// anonymous, it never aborts the request.
func LoadUser(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if id, ok := userID.(uint); ok {
			if user, err := users.FindByID(id); err == nil {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired gates mutating routes: anonymous callers are redirected to
// the login page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
