package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// DefaultRedisKey - ключ списка с JSON-записями
const DefaultRedisKey = "incident_records"

// ListClient - часть redis.Client, нужная для чтения и наполнения списка
type ListClient interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisSource читает записи из списка Redis, каждый элемент - WireIncident в JSON
type RedisSource struct {
	client ListClient
	key    string
	loc    *time.Location
	logger *logrus.Logger
}

// NewRedisSource создает RedisSource
func NewRedisSource(client ListClient, key string, logger *logrus.Logger) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{
		client: client,
		key:    key,
		loc:    time.Local,
		logger: logger,
	}
}

// Load читает весь список в исходном порядке
func (s *RedisSource) Load(ctx context.Context) ([]models.Incident, error) {
	values, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis source: failed to read %s: %w", s.key, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("redis source: list %s is empty", s.key)
	}

	items := make([]WireIncident, 0, len(values))
	for i, v := range values {
		var item WireIncident
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			return nil, fmt.Errorf("redis source: failed to unmarshal element %d: %w", i, err)
		}
		items = append(items, item)
	}

	return decodeBatch(items, s.loc, s.logger.WithField("source", "redis"))
}

// Seed дописывает записи в список, используется для подготовки демо-данных
func (s *RedisSource) Seed(ctx context.Context, records []models.Incident) error {
	if len(records) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(records))
	for _, rec := range records {
		payload, err := json.Marshal(ToWire(rec))
		if err != nil {
			return fmt.Errorf("redis source: failed to marshal record %s: %w", rec.ID, err)
		}
		values = append(values, payload)
	}
	if err := s.client.RPush(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("redis source: failed to seed %s: %w", s.key, err)
	}
	return nil
}
