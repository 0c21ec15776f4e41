package auth_module

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/notesnap/notesnap/internal/stores/user"
	"github.com/notesnap/notesnap/pkg/sdk"
)

// SignUp handles POST requests to register a new account
func SignUp(c *gin.Context) {
	// Parse request body (binding enforces email format and the
	// 6-character password minimum)
	var req sdk.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	u, err := GetService().SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(sdk.NewErrorResponse(http.StatusConflict, "Email already registered", nil).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to sign up", err).AsGinResponse())
		return
	}

	identity := sdk.Identity{ID: u.ID.String(), Email: u.Email}
	c.JSON(sdk.NewSuccessResponse("Check your email to confirm your account", identity).AsGinResponse())
}

// Confirm handles POST requests to redeem a confirmation token
func Confirm(c *gin.Context) {
	var req sdk.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	u, err := GetService().Confirm(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid confirmation token", nil).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to confirm account", err).AsGinResponse())
		return
	}

	identity := sdk.Identity{ID: u.ID.String(), Email: u.Email}
	c.JSON(sdk.NewSuccessResponse("Account confirmed", identity).AsGinResponse())
}

// SignIn handles POST requests to authenticate and issue a session token
func SignIn(c *gin.Context) {
	var req sdk.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	u, token, err := GetService().SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid login credentials", nil).AsGinResponse())
		case errors.Is(err, ErrNotConfirmed):
			c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Email not confirmed", nil).AsGinResponse())
		default:
			c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to sign in", err).AsGinResponse())
		}
		return
	}

	resp := sdk.SessionResponse{
		Token:     token.ID.String(),
		ExpiresAt: token.ExpiresAt,
		User:      sdk.Identity{ID: u.ID.String(), Email: u.Email},
	}
	c.JSON(sdk.NewSuccessResponse("Signed in successfully", resp).AsGinResponse())
}

// SignOut handles POST requests to revoke the current session token
func SignOut(c *gin.Context) {
	value, exists := c.Get(CONTEXT_TOKEN)
	if !exists {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
		return
	}

	if err := GetService().SignOut(c.Request.Context(), value.(uuid.UUID)); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to sign out", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("Signed out successfully").AsGinResponse())
}

// Me handles GET requests for the current identity
func Me(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Identity retrieved successfully", identity).AsGinResponse())
}
