package source

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Load(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(500, 42).WithClock(func() time.Time { return now })

	records, err := g.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 500)

	ids := make(map[string]struct{}, len(records))
	for i, r := range records {
		ids[r.ID] = struct{}{}

		assert.Contains(t, models.Severities(), r.Severity)
		assert.Contains(t, []models.Status{models.StatusPending, models.StatusResolved, models.StatusClosed}, r.Status)
		assert.Contains(t, []models.Gender{models.GenderMale, models.GenderFemale}, r.VictimGender)
		assert.Equal(t, r.City+" District", r.District)
		assert.NotEmpty(t, r.State)

		require.NotNil(t, r.VictimAge)
		assert.GreaterOrEqual(t, *r.VictimAge, 18)
		assert.LessOrEqual(t, *r.VictimAge, 77)

		require.True(t, r.HasLocation())
		base := cityCoordinates[r.City]
		assert.InDelta(t, base[0], *r.Latitude, 0.25)
		assert.InDelta(t, base[1], *r.Longitude, 0.25)

		assert.False(t, r.Date.After(now))
		assert.True(t, r.Date.After(now.Add(-sampleWindow)))

		if i > 0 {
			assert.False(t, r.Date.After(records[i-1].Date), "records must be sorted newest first")
		}
	}
	assert.Len(t, ids, 500, "ids must be unique")
}

func TestGenerator_SeedIsDeterministic(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	a := NewGenerator(50, 99).WithClock(clock).Generate()
	b := NewGenerator(50, 99).WithClock(clock).Generate()
	c := NewGenerator(50, 100).WithClock(clock).Generate()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerator_DefaultSize(t *testing.T) {
	assert.Len(t, NewGenerator(0, 1).Generate(), DefaultSampleSize)
}
