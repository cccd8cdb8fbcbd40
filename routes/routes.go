package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meetbook/handlers"
	"meetbook/middleware"
	"meetbook/utils"
)

// RegisterRoutes wires all HTTP endpoints onto the engine.
func RegisterRoutes(r *gin.Engine) {
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		api.POST("/chat", handlers.Chat)
		api.POST("/chat/stream", handlers.ChatStream)

		api.POST("/sessions", handlers.CreateSession)
		api.GET("/sessions/:id", handlers.GetSession)
		api.POST("/sessions/:id/reset", handlers.ResetSession)
		api.DELETE("/sessions/:id", handlers.DeleteSession)

		api.GET("/stats", handlers.Stats)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/login", handlers.AdminLogin)

		protected := admin.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		{
			protected.GET("/sessions", handlers.AdminListSessions)
			protected.GET("/sessions/:id/messages", handlers.AdminSessionMessages)
			protected.GET("/report", handlers.AdminReport)
		}
	}
}
