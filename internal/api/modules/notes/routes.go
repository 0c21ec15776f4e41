package notes_module

import (
	"github.com/gin-gonic/gin"
	auth_module "github.com/notesnap/notesnap/internal/api/modules/auth"
)

// Register routes for the notes module. Every route requires a live
// session; the store additionally scopes all access by owner
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/notes")
	group.Use(auth_module.AuthenticationHandler())

	group.POST("", SaveNote)         // Persist an extracted record
	group.GET("", ListNotes)         // List the caller's note summaries
	group.GET("/:id", GetNote)       // Get one full note
	group.DELETE("/:id", DeleteNote) // Delete one note
}
