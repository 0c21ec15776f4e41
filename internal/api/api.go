package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/notesnap/notesnap/pkg/sdk"
	"github.com/notesnap/notesnap/pkg/utils"

	auth_module "github.com/notesnap/notesnap/internal/api/modules/auth"
	extract_module "github.com/notesnap/notesnap/internal/api/modules/extract"
	health_module "github.com/notesnap/notesnap/internal/api/modules/health"
	notes_module "github.com/notesnap/notesnap/internal/api/modules/notes"
)

// NewEngine builds the gin engine with all modules registered and
// initialized
func NewEngine(cfg *utils.Config) (*gin.Engine, error) {
	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(noRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation).
	// The extraction endpoint must be callable directly from a browser
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	if err := auth_module.Init(cfg); err != nil {
		return nil, err
	}
	auth_module.RegisterRoutes(baseGroup)

	if err := extract_module.Init(cfg); err != nil {
		return nil, err
	}
	extract_module.RegisterRoutes(baseGroup)

	if err := notes_module.Init(cfg); err != nil {
		return nil, err
	}
	notes_module.RegisterRoutes(baseGroup)

	return engine, nil
}

// Start builds the engine and runs the server
func Start(cfg *utils.Config) {
	port := cfg.GetWithDefault("API_PORT", "8080")

	engine, err := NewEngine(cfg)
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize server: ", err)
	}

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// noRouteHandler answers unknown paths with an envelope 404
func noRouteHandler(c *gin.Context) {
	c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Route not found", nil).AsGinResponse())
}
