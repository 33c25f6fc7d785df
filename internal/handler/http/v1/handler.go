package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/crime_analytics_platform/internal/aggregate"
	"github.com/shenikar/crime_analytics_platform/internal/service"
)

type Handler struct {
	dashboardService service.DashboardService
	logger           *logrus.Logger
	validate         *validator.Validate
}

func NewHandler(dashboardService service.DashboardService, logger *logrus.Logger) *Handler {
	return &Handler{
		dashboardService: dashboardService,
		logger:           logger,
		validate:         validator.New(),
	}
}

// bindFilter разбирает и проверяет параметры фильтрации. При ошибке ответ уже записан.
func (h *Handler) bindFilter(c *gin.Context, log *logrus.Entry) (FilterQuery, bool) {
	var q FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return q, false
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	return q, true
}

// respondError отображает ошибки сервиса в HTTP-ответы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": service.StateLoading, "error": service.ErrNotReady.Error()})
	case errors.Is(err, aggregate.ErrNoHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": aggregate.ErrNoHistory.Error()})
	case errors.Is(err, aggregate.ErrInsufficientHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": aggregate.ErrInsufficientHistory.Error()})
	default:
		log.WithError(err).Error("Failed to build view in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get a list of incidents
// @Description Get incidents matching all provided filters, newest first.
// @Tags Incidents
// @Produce json
// @Param state query string false "State substring"
// @Param city query string false "City substring"
// @Param year query string false "Calendar year"
// @Param crime_type query string false "Crime type substring"
// @Param start query string false "Range start, YYYY-MM-DD"
// @Param end query string false "Range end, YYYY-MM-DD"
// @Param limit query int false "Maximum number of records, 0 means all"
// @Success 200 {object} IncidentListResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	q, ok := h.bindFilter(c, log)
	if !ok {
		return
	}

	incidents, err := h.dashboardService.ListIncidents(c.Request.Context(), QueryToCriteria(q), q.Limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, IncidentListResponse{
		Count:     len(incidents),
		Incidents: ModelsToIncidentResponses(incidents),
	})
}

// @Summary Get dashboard views
// @Description Get summary, category charts, monthly trend and recent reports for the filtered records.
// @Tags Dashboard
// @Produce json
// @Param state query string false "State substring"
// @Param city query string false "City substring"
// @Param year query string false "Calendar year"
// @Param crime_type query string false "Crime type substring"
// @Param start query string false "Range start, YYYY-MM-DD"
// @Param end query string false "Range end, YYYY-MM-DD"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "getDashboard")
	q, ok := h.bindFilter(c, log)
	if !ok {
		return
	}

	view, err := h.dashboardService.Dashboard(c.Request.Context(), QueryToCriteria(q))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ViewToDashboardResponse(view))
}

// @Summary Get summary statistics
// @Description Get totals and resolution rate for the filtered records.
// @Tags Dashboard
// @Produce json
// @Param state query string false "State substring"
// @Param year query string false "Calendar year"
// @Param crime_type query string false "Crime type substring"
// @Success 200 {object} models.Summary
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")
	q, ok := h.bindFilter(c, log)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Stats(c.Request.Context(), QueryToCriteria(q))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Get monthly trend
// @Tags Dashboard
// @Produce json
// @Param state query string false "State substring"
// @Param crime_type query string false "Crime type substring"
// @Success 200 {array} models.MonthCount
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /trends [get]
func (h *Handler) getTrends(c *gin.Context) {
	log := h.logger.WithField("method", "getTrends")
	q, ok := h.bindFilter(c, log)
	if !ok {
		return
	}

	trend, err := h.dashboardService.Trends(c.Request.Context(), QueryToCriteria(q))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// @Summary Get state heatmap
// @Description Get per-state counts with mean coordinates.
// @Tags Map
// @Produce json
// @Param crime_type query string false "Crime type substring"
// @Param year query string false "Calendar year"
// @Success 200 {array} models.StateHotspot
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /heatmap [get]
func (h *Handler) getHeatmap(c *gin.Context) {
	log := h.logger.WithField("method", "getHeatmap")
	q, ok := h.bindFilter(c, log)
	if !ok {
		return
	}

	heat, err := h.dashboardService.Heatmap(c.Request.Context(), QueryToCriteria(q))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, heat)
}

// @Summary Get map points
// @Description Get filtered records that carry coordinates.
// @Tags Map
// @Produce json
// @Param state query string false "State substring"
// @Param crime_type query string false "Crime type substring"
// @Success 200 {array} models.MapPoint
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /map [get]
func (h *Handler) getMapPoints(c *gin.Context) {
	log := h.logger.WithField("method", "getMapPoints")
	q, ok := h.bindFilter(c, log)
	if !ok {
		return
	}

	points, err := h.dashboardService.MapPoints(c.Request.Context(), QueryToCriteria(q))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// @Summary Get filter options
// @Description Get distinct states, cities, crime types and years of the loaded records.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.FilterOptions
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /filters/options [get]
func (h *Handler) getFilterOptions(c *gin.Context) {
	log := h.logger.WithField("method", "getFilterOptions")

	opts, err := h.dashboardService.FilterOptions(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// @Summary Predict crime trend
// @Description Get a naive six month forecast for a location and crime type.
// @Tags Prediction
// @Produce json
// @Param location query string true "State or city substring"
// @Param crime_type query string true "Crime type substring"
// @Success 200 {object} models.Forecast
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 422 {object} map[string]string "Not enough history"
// @Failure 503 {object} map[string]string "Records are still loading"
// @Router /predict [get]
func (h *Handler) predict(c *gin.Context) {
	log := h.logger.WithField("method", "predict")

	var q PredictQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forecast, err := h.dashboardService.Predict(c.Request.Context(), q.Location, q.CrimeType)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// @Summary Get application health status
// @Description Get loading status of the incident records
// @Tags System
// @Produce json
// @Success 200 {object} service.Status
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.Status())
}

