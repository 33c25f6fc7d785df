package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildView_EmptyCollection(t *testing.T) {
	view := BuildView(nil, models.FilterCriteria{State: "Goa"}, ViewOptions{TopN: 10, RecentLimit: 10})

	assert.Equal(t, 0, view.Summary.Total)
	assert.Equal(t, 0.0, view.Summary.ResolutionRate)
	assert.Empty(t, view.ByCrimeType)
	assert.Empty(t, view.TopStates)
	assert.Empty(t, view.Trend)
	assert.Empty(t, view.Recent)
	require.Len(t, view.BySeverity, 3)
	for _, sc := range view.BySeverity {
		assert.Zero(t, sc.Count)
	}
}

func TestBuildView_SeveritySumsToFiltered(t *testing.T) {
	records := scenarioRecords()
	criteria := []models.FilterCriteria{
		{},
		{State: "Delhi"},
		{CrimeType: "theft"},
		{Year: "2024"},
		models.FilterCriteria{}.WithDateRange("2024-01-01", "2024-02-28"),
	}

	for _, c := range criteria {
		view := BuildView(records, c, ViewOptions{})

		sum := 0
		for _, sc := range view.BySeverity {
			sum += sc.Count
		}
		assert.Equal(t, view.Summary.Total, sum)
		assert.Equal(t, c, view.Criteria)
	}
}

func TestBuildView_IsPure(t *testing.T) {
	records := scenarioRecords()
	criteria := models.FilterCriteria{State: "Delhi"}

	first := BuildView(records, criteria, ViewOptions{TopN: 1})
	second := BuildView(records, criteria, ViewOptions{TopN: 1})

	assert.Equal(t, first, second)
	assert.Len(t, first.TopStates, 1)
	assert.Equal(t, scenarioRecords(), records)
}

func TestSession_PublishOnce(t *testing.T) {
	s := NewSession()

	_, ok := s.Records()
	assert.False(t, ok)
	assert.True(t, s.LoadedAt().IsZero())

	assert.True(t, s.publish(scenarioRecords(), time.Now()))
	assert.False(t, s.publish(nil, time.Now()))

	records, ok := s.Records()
	assert.True(t, ok)
	assert.Len(t, records, 5)
}

func TestNewLoadedSession(t *testing.T) {
	s := NewLoadedSession(scenarioRecords())

	select {
	case <-s.Ready():
	default:
		t.Fatal("session must be ready")
	}
	assert.NotEqual(t, uuid.Nil, s.ID)
}
