package aggregate

import (
	"sort"
	"strconv"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// Options собирает уникальные значения для выпадающих списков фильтров.
// Годы идут от новых к старым, остальное по алфавиту.
func Options(records []models.Incident) models.FilterOptions {
	states := make(map[string]struct{})
	cities := make(map[string]struct{})
	types := make(map[string]struct{})
	years := make(map[string]struct{})
	for _, r := range records {
		states[r.State] = struct{}{}
		cities[r.City] = struct{}{}
		types[r.CrimeType] = struct{}{}
		years[strconv.Itoa(r.Date.Local().Year())] = struct{}{}
	}

	opts := models.FilterOptions{
		States:     sortedKeys(states),
		Cities:     sortedKeys(cities),
		CrimeTypes: sortedKeys(types),
		Years:      sortedKeys(years),
	}
	sort.Sort(sort.Reverse(sort.StringSlice(opts.Years)))
	return opts
}

// Recent возвращает первые limit записей набора
func Recent(records []models.Incident, limit int) []models.Incident {
	if limit <= 0 || len(records) <= limit {
		return records
	}
	return records[:limit]
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
