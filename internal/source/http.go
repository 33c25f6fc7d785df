package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/sirupsen/logrus"
)

// RemoteQuery - необязательные фильтры, которые понимает удаленный API
type RemoteQuery struct {
	State     string
	City      string
	CrimeType string
	Severity  string
	Year      int
	Limit     int
}

func (q RemoteQuery) values() url.Values {
	v := url.Values{}
	if q.State != "" {
		v.Set("state", q.State)
	}
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.CrimeType != "" {
		v.Set("crime_type", q.CrimeType)
	}
	if q.Severity != "" {
		v.Set("severity", q.Severity)
	}
	if q.Year > 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// HTTPSource загружает записи из удаленного API (GET {base}/crimes)
type HTTPSource struct {
	baseURL    string
	query      RemoteQuery
	httpClient *http.Client
	loc        *time.Location
	logger     *logrus.Logger
}

// NewHTTPSource создает HTTPSource
func NewHTTPSource(baseURL string, timeout time.Duration, query RemoteQuery, logger *logrus.Logger) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		query:   query,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		loc:    time.Local,
		logger: logger,
	}
}

// Load выполняет запрос и разбирает ответ
func (s *HTTPSource) Load(ctx context.Context) ([]models.Incident, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("remote source: base url is not configured")
	}

	endpoint := s.baseURL + "/crimes"
	if qs := s.query.values().Encode(); qs != "" {
		endpoint += "?" + qs
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("remote source: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote source: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote source: unexpected status code %d", resp.StatusCode)
	}

	var items []WireIncident
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("remote source: failed to decode response: %w", err)
	}

	return decodeBatch(items, s.loc, s.logger.WithField("source", "http"))
}

// decodeBatch считает пачку неудачной, только если из непустого ответа не удалось разобрать ни одной записи
func decodeBatch(items []WireIncident, loc *time.Location, log *logrus.Entry) ([]models.Incident, error) {
	records, err := DecodeWire(items, loc)
	if err != nil {
		if len(records) == 0 {
			return nil, fmt.Errorf("no valid records in batch: %w", err)
		}
		log.WithError(err).WithFields(logrus.Fields{
			"received": len(items),
			"accepted": len(records),
		}).Warn("Skipped malformed records")
	}
	return records, nil
}
