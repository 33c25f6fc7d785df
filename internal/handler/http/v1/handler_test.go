package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/crime_analytics_platform/internal/aggregate"
	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/shenikar/crime_analytics_platform/internal/service"
	"github.com/shenikar/crime_analytics_platform/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockDashboardService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDashboardService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	handler := NewHandler(mockService, logger)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testIncident(id, state string) models.Incident {
	lat, lon := 19.07, 72.87
	return models.Incident{
		ID:        id,
		CrimeType: "Theft",
		State:     state,
		City:      "Mumbai",
		District:  "Mumbai District",
		Date:      time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
		Latitude:  &lat,
		Longitude: &lon,
		Severity:  models.SeverityHigh,
		Status:    models.StatusPending,
	}
}

func TestListIncidents_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedCriteria := models.FilterCriteria{
		State: "Maharashtra",
		Year:  "2024",
		DateRange: models.DateRange{
			Start: "2024-01-01",
			End:   "2024-12-31",
		},
	}

	mockService.EXPECT().
		ListIncidents(gomock.Any(), expectedCriteria, 5).
		Return([]models.Incident{testIncident("crime_1", "Maharashtra")}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents?state=Maharashtra&year=2024&start=2024-01-01&end=2024-12-31&limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentListResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, "crime_1", resp.Incidents[0].ID)
	assert.Equal(t, "high", resp.Incidents[0].Severity)
	assert.Empty(t, resp.Incidents[0].VictimGender)
}

func TestListIncidents_InvalidLimit(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/incidents?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid query parameters")

	w = makeRequest(router, "GET", "/api/v1/incidents?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Limit' failed on the 'min' tag")
}

func TestListIncidents_MalformedYearPassedThrough(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListIncidents(gomock.Any(), models.FilterCriteria{Year: "twenty"}, 0).
		Return([]models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents?year=twenty", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"incidents":[]}`, w.Body.String())
}

func TestListIncidents_Loading(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, service.ErrNotReady).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"loading"`)
}

func TestGetDashboard_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	view := &models.DashboardView{
		Criteria: models.FilterCriteria{CrimeType: "theft"},
		Summary:  models.Summary{Total: 1, TotalDisplay: "1"},
		BySeverity: []models.SeverityCount{
			{Severity: models.SeverityLow},
			{Severity: models.SeverityMedium},
			{Severity: models.SeverityHigh, Count: 1},
		},
		Recent: []models.Incident{testIncident("crime_7", "Maharashtra")},
	}

	mockService.EXPECT().
		Dashboard(gomock.Any(), models.FilterCriteria{CrimeType: "theft"}).
		Return(view, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/dashboard?crime_type=theft", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp DashboardResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.Total)
	assert.Len(t, resp.BySeverity, 3)
	require.Len(t, resp.Recent, 1)
	assert.Equal(t, "crime_7", resp.Recent[0].ID)
}

func TestGetDashboard_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		Dashboard(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("unexpected")).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/dashboard", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetStats_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		Stats(gomock.Any(), models.FilterCriteria{State: "Delhi"}).
		Return(&models.Summary{Total: 2000, Resolved: 500, ResolutionRate: 25, TotalDisplay: "2,000"}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/stats?state=Delhi", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.Summary
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 2000, resp.Total)
	assert.Equal(t, "2,000", resp.TotalDisplay)
}

func TestGetTrendsHeatmapMap_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Trends(gomock.Any(), models.FilterCriteria{}).
		Return([]models.MonthCount{{Key: "2024-03", Label: "Mar 2024", Count: 4}}, nil).Times(1)
	mockService.EXPECT().Heatmap(gomock.Any(), models.FilterCriteria{}).
		Return([]models.StateHotspot{{State: "Delhi", CrimeCount: 3, Latitude: 28.6, Longitude: 77.2}}, nil).Times(1)
	mockService.EXPECT().MapPoints(gomock.Any(), models.FilterCriteria{}).
		Return([]models.MapPoint{{ID: "crime_1", Latitude: 28.6, Longitude: 77.2}}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/trends", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"2024-03"`)

	w = makeRequest(router, "GET", "/api/v1/heatmap", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"crime_count":3`)

	w = makeRequest(router, "GET", "/api/v1/map", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"crime_1"`)
}

func TestGetFilterOptions_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	opts := &models.FilterOptions{
		States:     []string{"Delhi", "Maharashtra"},
		Cities:     []string{"Mumbai"},
		CrimeTypes: []string{"Theft"},
		Years:      []string{"2024", "2023"},
	}

	mockService.EXPECT().FilterOptions(gomock.Any()).Return(opts, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/filters/options", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.FilterOptions
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, *opts, resp)
}

func TestPredict_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	forecast := &models.Forecast{
		Location:          "Delhi",
		CrimeType:         "Theft",
		HistoricalAverage: 3,
		Predictions:       []models.Prediction{{Month: "2024-05", PredictedCount: 3, Confidence: 0.85}},
	}

	mockService.EXPECT().Predict(gomock.Any(), "Delhi", "Theft").Return(forecast, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/predict?location=Delhi&crime_type=Theft", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.Forecast
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, *forecast, resp)
}

func TestPredict_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Predict(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/predict?location=Delhi", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'CrimeType' failed on the 'required' tag")
}

func TestPredict_NotEnoughHistory(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "no history", err: aggregate.ErrNoHistory},
		{name: "insufficient history", err: aggregate.ErrInsufficientHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)

			mockService.EXPECT().
				Predict(gomock.Any(), "Goa", "Fraud").
				Return(nil, fmt.Errorf("service: could not build forecast: %w", tt.err)).
				Times(1)

			w := makeRequest(router, "GET", "/api/v1/predict?location=Goa&crime_type=Fraud", nil)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestHealthCheck(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	sessionID := uuid.New()

	mockService.EXPECT().
		Status().
		Return(service.Status{State: service.StateReady, SessionID: sessionID, Records: 2000}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp service.Status
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.State)
	assert.Equal(t, sessionID, resp.SessionID)
	assert.Equal(t, 2000, resp.Records)
	assert.NotContains(t, w.Body.String(), "loaded_at")
}

func TestQueryToCriteria(t *testing.T) {
	q := FilterQuery{State: "a", City: "b", Year: "2023", CrimeType: "c", Start: "2023-01-01"}

	criteria := QueryToCriteria(q)

	assert.Equal(t, models.FilterCriteria{
		State:     "a",
		City:      "b",
		Year:      "2023",
		CrimeType: "c",
		DateRange: models.DateRange{Start: "2023-01-01"},
	}, criteria)
}
