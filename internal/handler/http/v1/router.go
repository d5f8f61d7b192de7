package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Прием отчетов
	protected.POST("/reports", h.submitReport)

	// События
	events := protected.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/stats", h.getStats)
		events.GET("/:id", h.getEvent)
		events.POST("/:id/reconfirm", h.reconfirmEvent)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
