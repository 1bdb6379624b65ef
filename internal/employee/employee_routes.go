package employee

import (
	"go-checador/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	empleados := r.Group("/empleados")
	empleados.Use(middleware.AuthMiddleware())
	{
		empleados.GET("", h.GetAll)
		empleados.GET("/:id", h.GetByID)
		empleados.POST("", middleware.RoleMiddleware("ADMIN"), h.Create)
		empleados.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), h.Delete)
	}
}
