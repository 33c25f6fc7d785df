package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// Session владеет коллекцией записей на время работы процесса.
// Коллекция публикуется один раз и дальше только читается.
type Session struct {
	ID uuid.UUID

	once     sync.Once
	ready    chan struct{}
	records  []models.Incident
	loadedAt time.Time
}

// NewSession создает сессию в состоянии загрузки
func NewSession() *Session {
	return &Session{
		ID:    uuid.New(),
		ready: make(chan struct{}),
	}
}

// NewLoadedSession создает сессию с уже загруженной коллекцией
func NewLoadedSession(records []models.Incident) *Session {
	s := NewSession()
	s.publish(records, time.Now())
	return s
}

// publish сохраняет коллекцию и снимает состояние загрузки; повторные вызовы игнорируются
func (s *Session) publish(records []models.Incident, at time.Time) bool {
	published := false
	s.once.Do(func() {
		s.records = records
		s.loadedAt = at
		close(s.ready)
		published = true
	})
	return published
}

// Records возвращает коллекцию, если загрузка завершена
func (s *Session) Records() ([]models.Incident, bool) {
	select {
	case <-s.ready:
		return s.records, true
	default:
		return nil, false
	}
}

// Ready закрывается после загрузки коллекции
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// LoadedAt - время завершения загрузки, нулевое пока идет загрузка
func (s *Session) LoadedAt() time.Time {
	if _, ok := s.Records(); !ok {
		return time.Time{}
	}
	return s.loadedAt
}
