package auth_module

import (
	"github.com/gin-gonic/gin"
)

// Register routes for the auth module
func RegisterRoutes(g *gin.RouterGroup) {
	// Create base group for auth routes
	group := g.Group("/auth")

	// Public routes
	group.POST("/signup", SignUp)
	group.POST("/confirm", Confirm)
	group.POST("/signin", SignIn)

	// Protected routes (require a live session)
	protected := group.Group("/")
	protected.Use(AuthenticationHandler())
	protected.POST("/signout", SignOut)
	protected.GET("/me", Me)
}
