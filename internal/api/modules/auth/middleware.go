package auth_module

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/notesnap/notesnap/pkg/sdk"
)

// Context keys set by the authentication middleware
const (
	CONTEXT_IDENTITY = "identity"
	CONTEXT_TOKEN    = "token"
)

// AuthenticationHandler validates the bearer token on protected routes
// and stores the resolved identity in the request context
func AuthenticationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Missing bearer token", nil).AsGinResponse())
			return
		}

		token, err := uuid.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
			return
		}

		u, err := GetService().CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
			return
		}

		c.Set(CONTEXT_IDENTITY, sdk.Identity{ID: u.ID.String(), Email: u.Email})
		c.Set(CONTEXT_TOKEN, token)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity set by the middleware
func IdentityFromContext(c *gin.Context) (sdk.Identity, bool) {
	value, exists := c.Get(CONTEXT_IDENTITY)
	if !exists {
		return sdk.Identity{}, false
	}

	identity, ok := value.(sdk.Identity)
	return identity, ok
}
