package service

import (
	"github.com/shenikar/crime_analytics_platform/internal/aggregate"
	"github.com/shenikar/crime_analytics_platform/internal/filter"
	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// ViewOptions - параметры построения представлений дашборда
type ViewOptions struct {
	TopN        int
	RecentLimit int
}

// BuildView фильтрует коллекцию и считает все агрегаты. Чистая функция,
// результат ничего не кэширует и пересчитывается на каждый вызов.
func BuildView(records []models.Incident, criteria models.FilterCriteria, opts ViewOptions) models.DashboardView {
	filtered := filter.Apply(records, criteria)

	return models.DashboardView{
		Criteria:    criteria,
		Summary:     aggregate.Summarize(filtered),
		ByCrimeType: aggregate.Ranked(aggregate.ByCrimeType(filtered), 0),
		TopStates:   aggregate.Ranked(aggregate.ByState(filtered), opts.TopN),
		BySeverity:  aggregate.BySeverity(filtered),
		Trend:       aggregate.ByMonth(filtered),
		Recent:      aggregate.Recent(filtered, opts.RecentLimit),
	}
}
