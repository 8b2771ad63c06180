package routes

import (
	"net/http"

	"creatormatch/internal/auth"
	"creatormatch/internal/handlers"
	"creatormatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all middleware and routes attached.
func SetupRouter(h *handlers.AppHandlers, tokens *auth.TokenManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// Provider webhook authenticates via shared secret, not a session.
	api.POST("/subscription/webhook", h.Subscription.ProviderWebhook)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokens))
	{
		authed.POST("/search/creators", h.Search.SearchCreators)

		authed.POST("/matches", h.Match.RecordMatch)
		authed.GET("/matches/latest", h.Match.LatestMatch)

		authed.POST("/onboarding", h.Onboarding.Submit)
		authed.GET("/onboarding/latest", h.Onboarding.LatestAnswer)

		authed.GET("/subscription", h.Subscription.GetCurrent)

		authed.GET("/creators/:id", h.Creator.Get)
	}

	// Catalog ingestion is restricted to admins.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.RoleMiddleware("admin"))
	{
		admin.POST("/creators", h.Creator.Upsert)
	}

	return router
}
