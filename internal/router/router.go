package router

import (
	"blogpost/internal/handlers"
	"blogpost/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires the route table. Handlers arrive fully constructed from
// main; this package only maps paths to them.
func Register(r *gin.Engine, pages *handlers.PageHandler, auth *handlers.AuthHandler, posts *handlers.PostHandler, users *handlers.UserHandler) {
	// Public routes
	r.GET("/", pages.Home)
	r.GET("/home", pages.Home)
	r.GET("/about", pages.About)

	r.GET("/register", auth.ShowRegister)
	r.POST("/register", auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)
	r.POST("/logout", auth.Logout)

	r.GET("/post/:id", posts.Detail)
	r.GET("/user/:username", users.UserPosts)

	r.GET("/reset_password", auth.ShowResetRequest)
	r.POST("/reset_password", auth.ResetRequest)
	r.GET("/reset_password/:token", auth.ShowResetToken)
	r.POST("/reset_password/:token", auth.ResetToken)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/account", users.ShowAccount)
		authorized.POST("/account", users.UpdateAccount)

		authorized.GET("/post/new", posts.ShowCreate)
		authorized.POST("/post/new", posts.Create)
		authorized.GET("/post/:id/update", posts.ShowEdit)
		authorized.POST("/post/:id/update", posts.Update)
		authorized.POST("/post/:id/delete", posts.Delete)
	}
}
