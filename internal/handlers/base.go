package handlers

import (
	"blogpost/internal/middleware"
	"blogpost/internal/models"

	"github.com/gin-gonic/gin"
)

// Render injects common variables like the current user before rendering.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Always overwritten so cached render data never carries another
	// request's identity
	obj["CurrentUser"] = currentUser(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// currentUser returns the authenticated user, or nil for anonymous.
func currentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(middleware.CurrentUserKey); exists {
		return v.(*models.User)
	}
	return nil
}
