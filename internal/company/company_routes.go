package company

import (
	"go-checador/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	empresas := r.Group("/empresas")
	empresas.Use(middleware.AuthMiddleware())
	{
		empresas.GET("/:id", h.GetByID)
		empresas.POST("", middleware.RoleMiddleware("ADMIN"), h.Create)
		empresas.PUT("/:id/location", middleware.RoleMiddleware("ADMIN"), h.UpdateLocation)
	}
}
