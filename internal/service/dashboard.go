package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/crime_analytics_platform/internal/aggregate"
	"github.com/shenikar/crime_analytics_platform/internal/config"
	"github.com/shenikar/crime_analytics_platform/internal/filter"
	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/shenikar/crime_analytics_platform/internal/source"
)

// ErrNotReady возвращается, пока коллекция записей загружается
var ErrNotReady = errors.New("records are still loading")

const (
	StateLoading = "loading"
	StateReady   = "ok"
)

// Status - состояние сессии для health-check
type Status struct {
	State     string    `json:"status"`
	SessionID uuid.UUID `json:"session_id"`
	Records   int       `json:"records"`
	LoadedAt  time.Time `json:"loaded_at,omitzero"`
}

// DashboardService определяет контракт для построения представлений дашборда
type DashboardService interface {
	Start(ctx context.Context)
	Status() Status
	ListIncidents(ctx context.Context, criteria models.FilterCriteria, limit int) ([]models.Incident, error)
	Dashboard(ctx context.Context, criteria models.FilterCriteria) (*models.DashboardView, error)
	Stats(ctx context.Context, criteria models.FilterCriteria) (*models.Summary, error)
	Trends(ctx context.Context, criteria models.FilterCriteria) ([]models.MonthCount, error)
	Heatmap(ctx context.Context, criteria models.FilterCriteria) ([]models.StateHotspot, error)
	MapPoints(ctx context.Context, criteria models.FilterCriteria) ([]models.MapPoint, error)
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
	Predict(ctx context.Context, location, crimeType string) (*models.Forecast, error)
}

type dashboardService struct {
	source  source.RecordSource
	session *Session
	logger  *logrus.Logger
	opts    ViewOptions
	now     func() time.Time
}

func NewDashboardService(src source.RecordSource, logger *logrus.Logger, cfg *config.Config) DashboardService {
	return newDashboardService(src, NewSession(), logger, cfg)
}

func newDashboardService(src source.RecordSource, session *Session, logger *logrus.Logger, cfg *config.Config) *dashboardService {
	return &dashboardService{
		source:  src,
		session: session,
		logger:  logger,
		opts: ViewOptions{
			TopN:        cfg.TopN,
			RecentLimit: cfg.RecentLimit,
		},
		now: time.Now,
	}
}

// Start запускает загрузку коллекции в фоне. До её завершения сервис отвечает ErrNotReady.
func (s *dashboardService) Start(ctx context.Context) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dashboard",
		"method":     "Start",
		"session_id": s.session.ID,
	})
	log.Info("Loading incident records...")

	go func() {
		if err := s.load(ctx); err != nil {
			log.WithError(err).Error("Failed to load incident records, dashboard stays in loading state")
			return
		}
		records, _ := s.session.Records()
		log.WithField("count", len(records)).Info("Incident records loaded")
	}()
}

func (s *dashboardService) load(ctx context.Context) error {
	records, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("service: could not load records: %w", err)
	}
	s.session.publish(records, s.now())
	return nil
}

// Status возвращает состояние загрузки
func (s *dashboardService) Status() Status {
	records, ok := s.session.Records()
	if !ok {
		return Status{State: StateLoading, SessionID: s.session.ID}
	}
	return Status{
		State:     StateReady,
		SessionID: s.session.ID,
		Records:   len(records),
		LoadedAt:  s.session.LoadedAt(),
	}
}

func (s *dashboardService) records(method string) ([]models.Incident, *logrus.Entry, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dashboard",
		"method":     method,
		"session_id": s.session.ID,
	})
	records, ok := s.session.Records()
	if !ok {
		log.Debug("Records requested while loading")
		return nil, log, ErrNotReady
	}
	return records, log, nil
}

// ListIncidents возвращает отфильтрованные записи, limit <= 0 означает все
func (s *dashboardService) ListIncidents(_ context.Context, criteria models.FilterCriteria, limit int) ([]models.Incident, error) {
	records, log, err := s.records("ListIncidents")
	if err != nil {
		return nil, err
	}

	filtered := aggregate.Recent(filter.Apply(records, criteria), limit)
	log.WithField("count", len(filtered)).Debug("Incidents filtered")
	return filtered, nil
}

// Dashboard строит все представления дашборда
func (s *dashboardService) Dashboard(_ context.Context, criteria models.FilterCriteria) (*models.DashboardView, error) {
	records, log, err := s.records("Dashboard")
	if err != nil {
		return nil, err
	}

	view := BuildView(records, criteria, s.opts)
	log.WithField("total", view.Summary.Total).Debug("Dashboard view built")
	return &view, nil
}

// Stats возвращает сводную статистику
func (s *dashboardService) Stats(_ context.Context, criteria models.FilterCriteria) (*models.Summary, error) {
	records, _, err := s.records("Stats")
	if err != nil {
		return nil, err
	}

	summary := aggregate.Summarize(filter.Apply(records, criteria))
	return &summary, nil
}

// Trends возвращает помесячный временной ряд
func (s *dashboardService) Trends(_ context.Context, criteria models.FilterCriteria) ([]models.MonthCount, error) {
	records, _, err := s.records("Trends")
	if err != nil {
		return nil, err
	}
	return aggregate.ByMonth(filter.Apply(records, criteria)), nil
}

// Heatmap возвращает точки тепловой карты по штатам
func (s *dashboardService) Heatmap(_ context.Context, criteria models.FilterCriteria) ([]models.StateHotspot, error) {
	records, _, err := s.records("Heatmap")
	if err != nil {
		return nil, err
	}
	return aggregate.Heatmap(filter.Apply(records, criteria)), nil
}

// MapPoints возвращает маркеры для карты
func (s *dashboardService) MapPoints(_ context.Context, criteria models.FilterCriteria) ([]models.MapPoint, error) {
	records, _, err := s.records("MapPoints")
	if err != nil {
		return nil, err
	}
	return aggregate.MapPoints(filter.Apply(records, criteria)), nil
}

// FilterOptions возвращает варианты значений фильтров по всей коллекции
func (s *dashboardService) FilterOptions(_ context.Context) (*models.FilterOptions, error) {
	records, _, err := s.records("FilterOptions")
	if err != nil {
		return nil, err
	}
	opts := aggregate.Options(records)
	return &opts, nil
}

// Predict строит упрощенный прогноз для места и типа правонарушения
func (s *dashboardService) Predict(_ context.Context, location, crimeType string) (*models.Forecast, error) {
	records, log, err := s.records("Predict")
	if err != nil {
		return nil, err
	}
	log = log.WithFields(logrus.Fields{
		"location":   location,
		"crime_type": crimeType,
	})

	forecast, err := aggregate.Forecast(records, location, crimeType, s.now())
	if err != nil {
		log.WithError(err).Info("Forecast is not available")
		return nil, fmt.Errorf("service: could not build forecast: %w", err)
	}
	log.Info("Forecast built")
	return &forecast, nil
}
