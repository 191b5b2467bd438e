package routes

import (
	"net/http"
	"time"

	"travelorbit/handlers"
	"travelorbit/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/session", hb.StartChatHandler)

		// Protected routes (Require a session token)
		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.POST("/message", hb.ChatMessageHandler)
		protected.GET("/transcript", hb.TranscriptHandler)
		protected.POST("/reset", hb.ResetChatHandler)
	}
}

// RegisterBookingRoutes registers the typed booking actions a client UI
// fires outside plain chat text.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.Use(middleware.SessionAuthMiddleware())
		api.POST("/deal/select", hb.SelectDealHandler)
		api.POST("/package/select", hb.SelectPackageHandler)
		api.POST("/addons", hb.ApplyAddOnsHandler)
		api.POST("/pay", hb.PayHandler)
		api.POST("/pay/callback", hb.PaymentCallbackHandler)
		api.POST("/feedback", hb.FeedbackHandler)
	}
}

// RegisterAuthRoutes registers the third-party login callback.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/google/callback", hb.GoogleCallbackHandler)
	}
}

// RegisterDealRoutes registers public catalog browsing.
func RegisterDealRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/deals")
	{
		api.GET("", hb.ListDealsHandler)
		api.GET("/:dealId/details", hb.DealDetailsHandler)
	}
}

// RegisterGroupRoutes registers group voting. Voting is public (reached
// via the shareable link); conversion requires the leader's session.
func RegisterGroupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/groups")
	{
		api.POST("/:groupId/vote", hb.GroupVoteHandler)
		api.GET("/:groupId/result", hb.GroupResultHandler)

		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.POST("/:groupId/convert", hb.ConvertGroupHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TravelOrbit"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterChatRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterDealRoutes(r, hb)
	RegisterGroupRoutes(r, hb)
	RegisterHealthRoute(r)
}
