package aggregate

import (
	"sort"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

// Heatmap группирует записи с координатами по штатам и усредняет координаты.
// Записи без координат пропускаются.
func Heatmap(records []models.Incident) []models.StateHotspot {
	type acc struct {
		count    int
		lat, lon float64
	}
	byState := make(map[string]*acc)
	for _, r := range records {
		if !r.HasLocation() {
			continue
		}
		a, ok := byState[r.State]
		if !ok {
			a = &acc{}
			byState[r.State] = a
		}
		a.count++
		a.lat += *r.Latitude
		a.lon += *r.Longitude
	}

	out := make([]models.StateHotspot, 0, len(byState))
	for state, a := range byState {
		out = append(out, models.StateHotspot{
			State:      state,
			CrimeCount: a.count,
			Latitude:   a.lat / float64(a.count),
			Longitude:  a.lon / float64(a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CrimeCount != out[j].CrimeCount {
			return out[i].CrimeCount > out[j].CrimeCount
		}
		return out[i].State < out[j].State
	})
	return out
}

// MapPoints возвращает маркеры для записей с координатами в исходном порядке
func MapPoints(records []models.Incident) []models.MapPoint {
	out := make([]models.MapPoint, 0, len(records))
	for _, r := range records {
		if !r.HasLocation() {
			continue
		}
		out = append(out, models.MapPoint{
			ID:        r.ID,
			CrimeType: r.CrimeType,
			State:     r.State,
			City:      r.City,
			Date:      r.Date,
			Severity:  r.Severity,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
		})
	}
	return out
}
