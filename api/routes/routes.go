package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/config"
	"github.com/ppsociety/membership-backend/internal/handlers"
	"github.com/ppsociety/membership-backend/internal/middleware"
)

// HandlerDependencies carries the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	EventHandler        *handlers.EventHandler
	NewsHandler         *handlers.NewsHandler
	SubscriptionHandler *handlers.SubscriptionHandler
}

// SetupRouter configures the gin engine with middleware and all API routes
func SetupRouter(cfg *config.Config, logger *zap.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	api := router.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.GET("/verify-email", deps.AuthHandler.VerifyEmail)
		auth.POST("/forgot-password", deps.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", deps.AuthHandler.ResetPassword)
	}

	// User routes
	users := api.Group("/users")
	users.Use(middleware.RequireAuth(cfg))
	{
		users.GET("", middleware.RequireAdmin(), deps.UserHandler.List)
		users.GET("/profile", deps.UserHandler.GetProfile)
		users.PUT("/profile", deps.UserHandler.UpdateProfile)
		users.DELETE("/profile", deps.UserHandler.DeleteAccount)
		users.PUT("/change-password", deps.UserHandler.ChangePassword)
	}

	// Event routes
	events := api.Group("/events")
	{
		events.GET("", middleware.OptionalAuth(cfg), deps.EventHandler.List)
		events.GET("/:id", middleware.OptionalAuth(cfg), deps.EventHandler.Get)
		events.POST("", middleware.RequireAuth(cfg), deps.EventHandler.Create)
		events.PUT("/:id", middleware.RequireAuth(cfg), deps.EventHandler.Update)
		events.DELETE("/:id", middleware.RequireAuth(cfg), deps.EventHandler.Delete)
		events.POST("/:id/register", middleware.RequireAuth(cfg), deps.EventHandler.Register)
		events.DELETE("/:id/register", middleware.RequireAuth(cfg), deps.EventHandler.CancelRegistration)
		events.PUT("/:id/registrations/:userId", middleware.RequireAuth(cfg), deps.EventHandler.UpdateAttendance)
	}

	// News routes
	news := api.Group("/news")
	{
		news.GET("", middleware.OptionalAuth(cfg), deps.NewsHandler.List)
		news.GET("/:id", middleware.OptionalAuth(cfg), deps.NewsHandler.Get)
		news.POST("", middleware.RequireAuth(cfg), deps.NewsHandler.Create)
		news.PUT("/:id", middleware.RequireAuth(cfg), deps.NewsHandler.Update)
		news.DELETE("/:id", middleware.RequireAuth(cfg), deps.NewsHandler.Delete)
		news.POST("/:id/like", middleware.RequireAuth(cfg), deps.NewsHandler.ToggleLike)
		news.POST("/:id/comments", middleware.RequireAuth(cfg), deps.NewsHandler.AddComment)
	}

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("", deps.SubscriptionHandler.Subscribe)
		subscriptions.POST("/unsubscribe", deps.SubscriptionHandler.Unsubscribe)
		subscriptions.GET("", middleware.RequireAuth(cfg), middleware.RequireAdmin(), deps.SubscriptionHandler.List)
		subscriptions.PUT("/:id", middleware.RequireAuth(cfg), middleware.RequireAdmin(), deps.SubscriptionHandler.UpdatePreferences)
	}

	return router
}
