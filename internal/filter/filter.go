package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// DateLayout - формат границ диапазона дат, который отдаёт date-picker
const DateLayout = "2006-01-02"

type predicate func(models.Incident) bool

// Apply возвращает записи, удовлетворяющие всем непустым фильтрам (логическое И).
// Порядок записей сохраняется, исходный срез не изменяется.
// Некорректный год или дата не приводят к ошибке: соответствующий фильтр
// исключает все записи.
func Apply(records []models.Incident, criteria models.FilterCriteria) []models.Incident {
	return ApplyIn(records, criteria, time.Local)
}

// ApplyIn - то же, что Apply, но год и границы дат вычисляются в часовом поясе loc
func ApplyIn(records []models.Incident, criteria models.FilterCriteria, loc *time.Location) []models.Incident {
	preds := compile(criteria, loc)

	result := make([]models.Incident, 0, len(records))
	for _, rec := range records {
		if matchAll(rec, preds) {
			result = append(result, rec)
		}
	}
	return result
}

// Match проверяет одну запись
func Match(rec models.Incident, criteria models.FilterCriteria) bool {
	return matchAll(rec, compile(criteria, time.Local))
}

func matchAll(rec models.Incident, preds []predicate) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

// compile один раз разбирает фильтры, чтобы не делать этого для каждой записи
func compile(c models.FilterCriteria, loc *time.Location) []predicate {
	if loc == nil {
		loc = time.Local
	}

	var preds []predicate

	if c.State != "" {
		needle := strings.ToLower(c.State)
		preds = append(preds, func(r models.Incident) bool {
			return strings.Contains(strings.ToLower(r.State), needle)
		})
	}

	if c.City != "" {
		needle := strings.ToLower(c.City)
		preds = append(preds, func(r models.Incident) bool {
			return strings.Contains(strings.ToLower(r.City), needle)
		})
	}

	if c.Year != "" {
		preds = append(preds, yearPredicate(c.Year, loc))
	}

	if c.CrimeType != "" {
		needle := strings.ToLower(c.CrimeType)
		preds = append(preds, func(r models.Incident) bool {
			return strings.Contains(strings.ToLower(r.CrimeType), needle)
		})
	}

	// Диапазон применяется только если заданы обе границы
	if c.DateRange.Start != "" && c.DateRange.End != "" {
		preds = append(preds, rangePredicate(c.DateRange, loc))
	}

	return preds
}

func yearPredicate(raw string, loc *time.Location) predicate {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return reject
	}
	return func(r models.Incident) bool {
		return r.Date.In(loc).Year() == year
	}
}

func rangePredicate(dr models.DateRange, loc *time.Location) predicate {
	start, err := ParseDate(dr.Start, loc)
	if err != nil {
		return reject
	}
	end, err := ParseDate(dr.End, loc)
	if err != nil {
		return reject
	}
	return func(r models.Incident) bool {
		return !r.Date.Before(start) && !r.Date.After(end)
	}
}

// ParseDate разбирает дату YYYY-MM-DD как полночь в часовом поясе loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

func reject(models.Incident) bool { return false }
