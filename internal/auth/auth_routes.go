package auth

import (
	"go-checador/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.1, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware("ADMIN"),
			handler.Register,
		)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
