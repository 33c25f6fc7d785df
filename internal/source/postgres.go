package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// Querier - часть pgxpool.Pool, нужная для чтения записей
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource читает коллекцию записей из таблицы incident_records.
// Только чтение: записи создаются вне сервиса.
type PostgresSource struct {
	db     Querier
	loc    *time.Location
	logger *logrus.Logger
}

// NewPostgresSource создает PostgresSource
func NewPostgresSource(db Querier, logger *logrus.Logger) *PostgresSource {
	return &PostgresSource{db: db, loc: time.Local, logger: logger}
}

// Load возвращает все записи от новых к старым
func (s *PostgresSource) Load(ctx context.Context) ([]models.Incident, error) {
	query := `
		SELECT
			id,
			crime_type,
			state,
			city,
			district,
			occurred_at,
			latitude,
			longitude,
			severity,
			victim_age,
			victim_gender,
			status
		FROM incident_records
		ORDER BY occurred_at DESC, id;
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres source: failed to query incident records: %w", err)
	}
	defer rows.Close()

	items := make([]WireIncident, 0)
	for rows.Next() {
		var (
			w          WireIncident
			occurredAt time.Time
			gender     *string
		)
		err := rows.Scan(
			&w.ID,
			&w.CrimeType,
			&w.State,
			&w.City,
			&w.District,
			&occurredAt,
			&w.Latitude,
			&w.Longitude,
			&w.Severity,
			&w.VictimAge,
			&gender,
			&w.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres source: failed to scan incident row: %w", err)
		}
		if gender != nil {
			w.VictimGender = *gender
		}
		w.Date = occurredAt.In(s.loc).Format(time.RFC3339Nano)
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres source: error list iteration: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("postgres source: table incident_records is empty")
	}

	records, err := decodeBatch(items, s.loc, s.logger.WithField("source", "postgres"))
	if err != nil {
		return nil, fmt.Errorf("postgres source: %w", err)
	}
	return records, nil
}
