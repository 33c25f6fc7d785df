package source

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
)

const (
	DefaultSampleSize = 2000
	sampleWindow      = 2 * 365 * 24 * time.Hour
	coordJitter       = 0.5
	minVictimAge      = 18
	victimAgeSpan     = 60
)

var (
	sampleStates = []string{
		"Maharashtra", "Uttar Pradesh", "Gujarat", "Rajasthan", "Karnataka",
		"Tamil Nadu", "West Bengal", "Andhra Pradesh", "Madhya Pradesh", "Telangana",
		"Bihar", "Odisha", "Punjab", "Haryana", "Kerala",
	}

	sampleCities = []string{
		"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata",
		"Hyderabad", "Pune", "Ahmedabad", "Surat", "Jaipur",
		"Lucknow", "Kanpur", "Nagpur", "Indore", "Thane",
	}

	sampleCrimeTypes = []string{
		"Theft", "Burglary", "Assault", "Fraud", "Vehicle Theft",
		"Domestic Violence", "Robbery", "Cybercrime", "Drug Offense", "Murder",
	}

	// Приблизительные координаты городов
	cityCoordinates = map[string][2]float64{
		"Mumbai":    {19.0760, 72.8777},
		"Delhi":     {28.7041, 77.1025},
		"Bangalore": {12.9716, 77.5946},
		"Chennai":   {13.0827, 80.2707},
		"Kolkata":   {22.5726, 88.3639},
		"Hyderabad": {17.3850, 78.4867},
		"Pune":      {18.5204, 73.8567},
		"Ahmedabad": {23.0225, 72.5714},
		"Surat":     {21.1702, 72.8311},
		"Jaipur":    {26.9124, 75.7873},
		"Lucknow":   {26.8467, 80.9462},
		"Kanpur":    {26.4499, 80.3319},
		"Nagpur":    {21.1458, 79.0882},
		"Indore":    {22.7196, 75.8577},
		"Thane":     {19.2183, 72.9781},
	}

	// Центр Индии для городов без координат
	defaultCoordinates = [2]float64{20.5937, 78.9629}
)

// Generator создает синтетические записи. Всегда завершается успешно.
type Generator struct {
	size int
	seed uint64
	now  func() time.Time
}

// NewGenerator создает генератор на size записей. seed == 0 означает случайное зерно.
func NewGenerator(size int, seed uint64) *Generator {
	if size <= 0 {
		size = DefaultSampleSize
	}
	return &Generator{size: size, seed: seed, now: time.Now}
}

// WithClock подменяет источник текущего времени
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Load генерирует записи за последние два года, отсортированные от новых к старым
func (g *Generator) Load(_ context.Context) ([]models.Incident, error) {
	return g.Generate(), nil
}

// Generate возвращает новую коллекцию синтетических записей
func (g *Generator) Generate() []models.Incident {
	seed := g.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	now := g.now()

	records := make([]models.Incident, 0, g.size)
	for i := 0; i < g.size; i++ {
		city := pick(rng, sampleCities)
		state := pick(rng, sampleStates)

		base, ok := cityCoordinates[city]
		if !ok {
			base = defaultCoordinates
		}
		lat := base[0] + (rng.Float64()-0.5)*coordJitter
		lon := base[1] + (rng.Float64()-0.5)*coordJitter
		age := rng.IntN(victimAgeSpan) + minVictimAge

		records = append(records, models.Incident{
			ID:           fmt.Sprintf("crime_%d", i+1),
			CrimeType:    pick(rng, sampleCrimeTypes),
			State:        state,
			City:         city,
			District:     city + " District",
			Date:         now.Add(-time.Duration(rng.Float64() * float64(sampleWindow))),
			Latitude:     &lat,
			Longitude:    &lon,
			Severity:     pick(rng, models.Severities()),
			VictimAge:    &age,
			VictimGender: pick(rng, []models.Gender{models.GenderMale, models.GenderFemale}),
			Status:       pick(rng, []models.Status{models.StatusPending, models.StatusResolved, models.StatusClosed}),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
