package models

import "time"

// CategoryCount - пара (метка, количество) для графиков по категориям
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SeverityCount - количество записей одного уровня тяжести
type SeverityCount struct {
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}

// MonthCount - точка временного ряда: Key в формате YYYY-MM, Label вида "Jan 2006"
type MonthCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary - сводная статистика по набору записей
type Summary struct {
	Total              int     `json:"total"`
	Resolved           int     `json:"resolved"`
	Pending            int     `json:"pending"`
	Closed             int     `json:"closed"`
	HighSeverity       int     `json:"high_severity"`
	DistinctStates     int     `json:"distinct_states"`
	DistinctCrimeTypes int     `json:"distinct_crime_types"`
	ResolutionRate     float64 `json:"resolution_rate"`

	// Строки для отображения, отформатированные по локали
	TotalDisplay          string `json:"total_display"`
	ResolvedDisplay       string `json:"resolved_display"`
	HighSeverityDisplay   string `json:"high_severity_display"`
	ResolutionRateDisplay string `json:"resolution_rate_display"`
}

// StateHotspot - точка тепловой карты по штату
type StateHotspot struct {
	State      string  `json:"state"`
	CrimeCount int     `json:"crime_count"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// MapPoint - маркер на карте
type MapPoint struct {
	ID        string    `json:"id"`
	CrimeType string    `json:"crime_type"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Date      time.Time `json:"date"`
	Severity  Severity  `json:"severity"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// FilterOptions - варианты значений для панели фильтров
type FilterOptions struct {
	States     []string `json:"states"`
	Cities     []string `json:"cities"`
	CrimeTypes []string `json:"crime_types"`
	Years      []string `json:"years"`
}

// Prediction - прогноз количества правонарушений на месяц
type Prediction struct {
	Month          string  `json:"month"`
	PredictedCount int     `json:"predicted_count"`
	Confidence     float64 `json:"confidence"`
}

// Forecast - упрощённый прогноз тренда для места и типа правонарушения
type Forecast struct {
	Location          string       `json:"location"`
	CrimeType         string       `json:"crime_type"`
	HistoricalAverage float64      `json:"historical_average"`
	RecentTrend       float64      `json:"recent_trend"`
	Predictions       []Prediction `json:"predictions"`
}

// DashboardView - все производные представления для одного набора фильтров
type DashboardView struct {
	Criteria    FilterCriteria  `json:"criteria"`
	Summary     Summary         `json:"summary"`
	ByCrimeType []CategoryCount `json:"by_crime_type"`
	TopStates   []CategoryCount `json:"top_states"`
	BySeverity  []SeverityCount `json:"by_severity"`
	Trend       []MonthCount    `json:"trend"`
	Recent      []Incident      `json:"recent"`
}
