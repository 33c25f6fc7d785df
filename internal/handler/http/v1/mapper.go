package v1

import "github.com/shenikar/crime_analytics_platform/internal/models"

// QueryToCriteria преобразует параметры запроса в критерии фильтрации
func QueryToCriteria(q FilterQuery) models.FilterCriteria {
	return models.FilterCriteria{
		State:     q.State,
		City:      q.City,
		Year:      q.Year,
		CrimeType: q.CrimeType,
		DateRange: models.DateRange{
			Start: q.Start,
			End:   q.End,
		},
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:           model.ID,
		CrimeType:    model.CrimeType,
		State:        model.State,
		City:         model.City,
		District:     model.District,
		Date:         model.Date,
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		Severity:     string(model.Severity),
		VictimAge:    model.VictimAge,
		VictimGender: string(model.VictimGender),
		Status:       string(model.Status),
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(records []models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(records))
	for i, model := range records {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ViewToDashboardResponse преобразует представление дашборда в DTO
func ViewToDashboardResponse(view *models.DashboardView) *DashboardResponse {
	return &DashboardResponse{
		Criteria:    view.Criteria,
		Summary:     view.Summary,
		ByCrimeType: view.ByCrimeType,
		TopStates:   view.TopStates,
		BySeverity:  view.BySeverity,
		Trend:       view.Trend,
		Recent:      ModelsToIncidentResponses(view.Recent),
	}
}
