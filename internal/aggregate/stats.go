package aggregate

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

var printer = message.NewPrinter(language.English)

// Summarize считает одиночные показатели для карточек дашборда
func Summarize(records []models.Incident) models.Summary {
	s := models.Summary{Total: len(records)}

	states := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, r := range records {
		switch r.Status {
		case models.StatusResolved:
			s.Resolved++
		case models.StatusPending:
			s.Pending++
		case models.StatusClosed:
			s.Closed++
		}
		if r.Severity == models.SeverityHigh {
			s.HighSeverity++
		}
		states[r.State] = struct{}{}
		types[r.CrimeType] = struct{}{}
	}
	s.DistinctStates = len(states)
	s.DistinctCrimeTypes = len(types)
	s.ResolutionRate = RoundTo(Percent(s.Resolved, s.Total), 1)

	s.TotalDisplay = FormatCount(s.Total)
	s.ResolvedDisplay = FormatCount(s.Resolved)
	s.HighSeverityDisplay = FormatCount(s.HighSeverity)
	s.ResolutionRateDisplay = printer.Sprintf("%.1f%%", s.ResolutionRate)
	return s
}

// ResolutionRate - доля раскрытых дел в процентах, 0 для пустого набора
func ResolutionRate(records []models.Incident) float64 {
	resolved := 0
	for _, r := range records {
		if r.Status == models.StatusResolved {
			resolved++
		}
	}
	return Percent(resolved, len(records))
}

// Percent возвращает part/total*100, при total == 0 возвращает 0
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// RoundTo округляет до заданного числа знаков после запятой
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatCount форматирует число с разделителями разрядов: 2000 -> "2,000"
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
