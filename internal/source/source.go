package source

import (
	"context"
	"fmt"

	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/sirupsen/logrus"
)

// RecordSource определяет контракт загрузки коллекции записей при старте сессии
type RecordSource interface {
	Load(ctx context.Context) ([]models.Incident, error)
}

// FallbackSource загружает записи из основного источника, а при ошибке
// подставляет запасной (обычно генератор), чтобы дашборду всегда было что показать
type FallbackSource struct {
	name     string
	primary  RecordSource
	fallback RecordSource
	logger   *logrus.Logger
}

// NewFallbackSource создает FallbackSource
func NewFallbackSource(name string, primary, fallback RecordSource, logger *logrus.Logger) *FallbackSource {
	return &FallbackSource{
		name:     name,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Load загружает записи, при сбое основного источника переключаясь на запасной
func (f *FallbackSource) Load(ctx context.Context) ([]models.Incident, error) {
	log := f.logger.WithFields(logrus.Fields{
		"component": "source",
		"method":    "Load",
		"source":    f.name,
	})

	records, err := f.primary.Load(ctx)
	if err == nil {
		log.WithField("count", len(records)).Info("Records loaded from primary source")
		return records, nil
	}

	log.WithError(err).Warn("Primary source failed, falling back to sample data")
	records, err = f.fallback.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("source: fallback failed: %w", err)
	}
	log.WithField("count", len(records)).Info("Records loaded from fallback source")
	return records, nil
}
