package v1

import (
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// FilterQuery DTO параметров фильтрации
// @Description Параметры фильтрации записей
type FilterQuery struct {
	State     string `form:"state"`
	City      string `form:"city"`
	Year      string `form:"year"`
	CrimeType string `form:"crime_type"`
	Start     string `form:"start"`
	End       string `form:"end"`
	Limit     int    `form:"limit" validate:"omitempty,min=0,max=10000"`
}

// PredictQuery DTO параметров прогноза
// @Description Параметры прогноза
type PredictQuery struct {
	Location  string `form:"location" validate:"required"`
	CrimeType string `form:"crime_type" validate:"required"`
}

// IncidentResponse DTO для ответа с информацией о правонарушении
// @Description DTO для ответа с информацией о правонарушении
type IncidentResponse struct {
	ID           string    `json:"id"`
	CrimeType    string    `json:"crime_type"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	Date         time.Time `json:"date"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Severity     string    `json:"severity"`
	VictimAge    *int      `json:"victim_age,omitempty"`
	VictimGender string    `json:"victim_gender,omitempty"`
	Status       string    `json:"status"`
}

// IncidentListResponse DTO для списка правонарушений
// @Description DTO для списка правонарушений
type IncidentListResponse struct {
	Count     int                 `json:"count"`
	Incidents []*IncidentResponse `json:"incidents"`
}

// DashboardResponse DTO для ответа с представлениями дашборда
// @Description DTO для ответа с представлениями дашборда
type DashboardResponse struct {
	Criteria    models.FilterCriteria  `json:"criteria"`
	Summary     models.Summary         `json:"summary"`
	ByCrimeType []models.CategoryCount `json:"by_crime_type"`
	TopStates   []models.CategoryCount `json:"top_states"`
	BySeverity  []models.SeverityCount `json:"by_severity"`
	Trend       []models.MonthCount    `json:"trend"`
	Recent      []*IncidentResponse    `json:"recent"`
}
