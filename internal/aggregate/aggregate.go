package aggregate

import (
	"sort"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

const (
	// MonthKeyLayout - сортируемый ключ месяца
	MonthKeyLayout = "2006-01"
	// MonthLabelLayout - подпись месяца для графика
	MonthLabelLayout = "Jan 2006"
)

// ByCrimeType считает записи по типу правонарушения, ключ берётся как есть
func ByCrimeType(records []models.Incident) map[string]int {
	return countBy(records, func(r models.Incident) string { return r.CrimeType })
}

// ByState считает записи по штату, ключ берётся как есть
func ByState(records []models.Incident) map[string]int {
	return countBy(records, func(r models.Incident) string { return r.State })
}

func countBy(records []models.Incident, key func(models.Incident) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// Ranked превращает счётчики в пары, отсортированные по убыванию количества.
// При равенстве порядок по метке. limit <= 0 означает "без ограничения".
func Ranked(counts map[string]int, limit int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, models.CategoryCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BySeverity всегда возвращает три корзины low, medium, high, включая пустые
func BySeverity(records []models.Incident) []models.SeverityCount {
	levels := models.Severities()
	idx := make(map[models.Severity]int, len(levels))
	out := make([]models.SeverityCount, len(levels))
	for i, s := range levels {
		idx[s] = i
		out[i] = models.SeverityCount{Severity: s}
	}
	for _, r := range records {
		if i, ok := idx[r.Severity]; ok {
			out[i].Count++
		}
	}
	return out
}

// SeverityTotals - то же в виде map, удобно для проверок и процентов
func SeverityTotals(records []models.Incident) map[models.Severity]int {
	totals := make(map[models.Severity]int, 3)
	for _, sc := range BySeverity(records) {
		totals[sc.Severity] = sc.Count
	}
	return totals
}

// ByMonth строит временной ряд по месяцам в локальном часовом поясе
func ByMonth(records []models.Incident) []models.MonthCount {
	return ByMonthIn(records, time.Local)
}

// ByMonthIn строит временной ряд по месяцам, отсортированный по возрастанию времени
func ByMonthIn(records []models.Incident, loc *time.Location) []models.MonthCount {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]*models.MonthCount)
	for _, r := range records {
		d := r.Date.In(loc)
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
		key := first.Format(MonthKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &models.MonthCount{Key: key, Label: first.Format(MonthLabelLayout)}
			buckets[key] = b
		}
		b.Count++
	}

	out := make([]models.MonthCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	// YYYY-MM сортируется лексикографически так же, как по времени
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
