package source

import (
	"testing"
	"time"

	"github.com/shenikar/crime_analytics_platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func wire(id, date string) WireIncident {
	return WireIncident{
		ID:           id,
		CrimeType:    "Theft",
		State:        "Maharashtra",
		City:         "Mumbai",
		District:     "Mumbai District",
		Date:         date,
		Latitude:     ptr(19.07),
		Longitude:    ptr(72.87),
		Severity:     "high",
		VictimAge:    ptr(31),
		VictimGender: "female",
		Status:       "resolved",
	}
}

func TestParseWireDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)

	got, err := ParseWireDate("2024-03-05T10:20:30Z", ist)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, time.March, 5, 10, 20, 30, 0, time.UTC)))

	got, err = ParseWireDate("2024-03-05T10:20:30.123456", ist)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 10, 20, 30, 123456000, ist), got)

	got, err = ParseWireDate("2024-03-05", ist)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, ist), got)

	_, err = ParseWireDate("05/03/2024", ist)
	assert.Error(t, err)
}

func TestWireIncident_ToModel(t *testing.T) {
	rec, err := wire("crime_1", "2024-03-05T10:20:30+05:30").ToModel(time.UTC)

	require.NoError(t, err)
	assert.Equal(t, "crime_1", rec.ID)
	assert.Equal(t, models.SeverityHigh, rec.Severity)
	assert.Equal(t, models.StatusResolved, rec.Status)
	assert.Equal(t, models.GenderFemale, rec.VictimGender)
	assert.True(t, rec.HasLocation())
	assert.Equal(t, 31, *rec.VictimAge)
}

func TestWireIncident_ToModel_PartialCoordinatesDropped(t *testing.T) {
	w := wire("crime_1", "2024-03-05")
	w.Longitude = nil

	rec, err := w.ToModel(time.UTC)

	require.NoError(t, err)
	assert.False(t, rec.HasLocation())
	assert.Nil(t, rec.Latitude)
}

func TestWireIncident_ToModel_Invalid(t *testing.T) {
	badSeverity := wire("a", "2024-03-05")
	badSeverity.Severity = "critical"
	badStatus := wire("b", "2024-03-05")
	badStatus.Status = "open"
	badGender := wire("c", "2024-03-05")
	badGender.VictimGender = "x"

	for name, w := range map[string]WireIncident{
		"severity": badSeverity,
		"status":   badStatus,
		"gender":   badGender,
		"date":     wire("d", "yesterday"),
		"id":       wire("", "2024-03-05"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := w.ToModel(time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestDecodeWire_SkipsInvalidAndDuplicates(t *testing.T) {
	items := []WireIncident{
		wire("crime_1", "2024-03-05"),
		wire("crime_2", "garbage"),
		wire("crime_1", "2024-03-06"),
		wire("crime_3", "2024-03-07T08:00:00Z"),
	}

	records, err := DecodeWire(items, time.UTC)

	require.Error(t, err)
	assert.ErrorContains(t, err, "crime_2")
	assert.ErrorContains(t, err, "duplicate id")
	require.Len(t, records, 2)
	assert.Equal(t, "crime_1", records[0].ID)
	assert.Equal(t, "crime_3", records[1].ID)
}

func TestToWire_RoundTripsThroughModel(t *testing.T) {
	rec, err := wire("crime_9", "2024-03-05T10:20:30Z").ToModel(time.UTC)
	require.NoError(t, err)

	back, err := ToWire(rec).ToModel(time.UTC)

	require.NoError(t, err)
	assert.Equal(t, rec, back)
}
