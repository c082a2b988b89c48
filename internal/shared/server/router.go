package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "vault-backend/internal/auth"
	"vault-backend/internal/documents"
	"vault-backend/internal/shared/config"
	"vault-backend/internal/shared/server/middleware"
	"vault-backend/internal/shared/server/respond"
	"vault-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	// Local blobs are served straight from disk so their URLs resolve in dev.
	if deps.Config.ObjectStoreType == "local" && deps.Config.LocalStoreDir != "" {
		r.Static("/files", deps.Config.LocalStoreDir)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "AUTH",
		Rules: map[string]middleware.RateLimitRule{
			"AUTH": {Rate: 1, Burst: 10},
		},
	}))
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterAuthRoutes(authGroup)
	}
	if deps.GoogleAuth.Configured() {
		deps.GoogleAuth.RegisterRoutes(authGroup)
	}

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api.Group("/user"))
	}
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api.Group("/document"))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
