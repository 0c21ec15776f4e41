package auth_module

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/notesnap/notesnap/pkg/sdk"
	"github.com/notesnap/notesnap/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthRouter initializes the auth module with an in-memory store
// and returns a router with its routes registered
func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// No MYSQL_DATABASE configured, so Init falls back to memory
	require.NoError(t, Init(utils.NewConfig(nil)))

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))
	return engine
}

func doJSON(engine *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// confirmTokenFor digs the confirmation token out of the store, taking
// the place of the confirmation email
func confirmTokenFor(t *testing.T, email string) string {
	t.Helper()
	u, err := GetService().store.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return u.ConfirmToken
}

func TestSignUpValidation(t *testing.T) {
	engine := newAuthRouter(t)

	t.Run("password below minimum length", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signup", `{"email":"ana@example.com","password":"short"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signup", `{"email":"not-an-email","password":"secret123"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid sign up", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signup", `{"email":"ana@example.com","password":"secret123"}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.Identity]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Check your email to confirm your account", resp.Message)
		assert.Equal(t, "ana@example.com", resp.Data.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signup", `{"email":"ana@example.com","password":"secret123"}`, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSignInFlow(t *testing.T) {
	engine := newAuthRouter(t)

	w := doJSON(engine, http.MethodPost, "/api/auth/signup", `{"email":"sam@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("sign in before confirmation", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signin", `{"email":"sam@example.com","password":"secret123"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp sdk.ApiResponse[any]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Email not confirmed", resp.Message)
	})

	t.Run("confirm with bad token", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/confirm", `{"token":"bogus"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("confirm account", func(t *testing.T) {
		token := confirmTokenFor(t, "sam@example.com")
		w := doJSON(engine, http.MethodPost, "/api/auth/confirm", fmt.Sprintf(`{"token":%q}`, token), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signin", `{"email":"sam@example.com","password":"wrong-password"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp sdk.ApiResponse[any]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid login credentials", resp.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signin", `{"email":"ghost@example.com","password":"secret123"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var session sdk.SessionResponse
	t.Run("successful sign in", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signin", `{"email":"sam@example.com","password":"secret123"}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.SessionResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Data.Token)
		assert.Equal(t, "sam@example.com", resp.Data.User.Email)
		session = resp.Data
	})

	t.Run("me returns the identity", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/auth/me", "", session.Token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.Identity]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "sam@example.com", resp.Data.Email)
	})

	t.Run("sign out revokes the token", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/auth/signout", "", session.Token)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(engine, http.MethodGet, "/api/auth/me", "", session.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthenticationHandler(t *testing.T) {
	engine := newAuthRouter(t)

	t.Run("missing header", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/auth/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/auth/me", "", "not-a-uuid")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/api/auth/me", "", "7f1f1d64-0000-4000-8000-000000000000")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
