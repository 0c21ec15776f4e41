package extract_module

import (
	"github.com/gin-gonic/gin"
)

// Register routes for the extract module. The endpoint is public so a
// browser client can call it without a session; CORS preflight is
// answered by the app-level middleware
func RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/extract", ProcessNotes)
}
