package aggregate

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

const (
	forecastHorizon   = 6
	forecastStep      = 30 * 24 * time.Hour
	recentWindow      = 3
	minHistoryMonths  = 3
	baseConfidence    = 0.9
	confidenceDecay   = 0.05
	minimumConfidence = 0.6
)

var (
	ErrNoHistory           = errors.New("no historical data found for the specified location and crime type")
	ErrInsufficientHistory = errors.New("insufficient data for prediction")
)

// Forecast строит наивный прогноз на шесть месяцев вперёд.
// location ищется подстрокой в штате или городе, crimeType - подстрокой в типе.
func Forecast(records []models.Incident, location, crimeType string, now time.Time) (models.Forecast, error) {
	loc := strings.ToLower(location)
	ct := strings.ToLower(crimeType)

	matched := make([]models.Incident, 0)
	for _, r := range records {
		if !strings.Contains(strings.ToLower(r.State), loc) && !strings.Contains(strings.ToLower(r.City), loc) {
			continue
		}
		if !strings.Contains(strings.ToLower(r.CrimeType), ct) {
			continue
		}
		matched = append(matched, r)
	}
	if len(matched) == 0 {
		return models.Forecast{}, ErrNoHistory
	}

	months := ByMonthIn(matched, now.Location())
	if len(months) < minHistoryMonths {
		return models.Forecast{}, ErrInsufficientHistory
	}

	total := 0
	for _, m := range months {
		total += m.Count
	}
	avg := float64(total) / float64(len(months))

	recentTotal := 0
	for _, m := range months[len(months)-recentWindow:] {
		recentTotal += m.Count
	}
	recent := float64(recentTotal) / recentWindow

	trend := 0.0
	if avg > 0 {
		trend = (recent - avg) / avg
	}

	predictions := make([]models.Prediction, 0, forecastHorizon)
	for i := 1; i <= forecastHorizon; i++ {
		at := now.Add(time.Duration(i) * forecastStep)
		count := int(recent * (1 + trend*float64(i)*0.1))
		predictions = append(predictions, models.Prediction{
			Month:          at.Format(MonthKeyLayout),
			PredictedCount: max(0, count),
			Confidence:     RoundTo(math.Max(minimumConfidence, baseConfidence-float64(i)*confidenceDecay), 2),
		})
	}

	return models.Forecast{
		Location:          location,
		CrimeType:         crimeType,
		HistoricalAverage: RoundTo(avg, 2),
		RecentTrend:       RoundTo(trend*100, 2),
		Predictions:       predictions,
	}, nil
}
