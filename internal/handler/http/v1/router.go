package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/incidents", h.listIncidents)

	// Представления дашборда
	api.GET("/dashboard", h.getDashboard)
	api.GET("/stats", h.getStats)
	api.GET("/trends", h.getTrends)
	api.GET("/heatmap", h.getHeatmap)
	api.GET("/map", h.getMapPoints)
	api.GET("/filters/options", h.getFilterOptions)
	api.GET("/predict", h.predict)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
