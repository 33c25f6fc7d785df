package source

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeList - список в памяти вместо Redis
type fakeList struct {
	values []string
	err    error
}

func (f *fakeList) LRange(_ context.Context, _ string, _, _ int64) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(f.values, f.err)
}

func (f *fakeList) RPush(_ context.Context, _ string, values ...interface{}) *redis.IntCmd {
	for _, v := range values {
		f.values = append(f.values, string(v.([]byte)))
	}
	return redis.NewIntResult(int64(len(f.values)), f.err)
}

func marshalWire(t *testing.T, items ...WireIncident) []string {
	t.Helper()
	out := make([]string, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		require.NoError(t, err)
		out = append(out, string(b))
	}
	return out
}

func TestRedisSource_Load(t *testing.T) {
	list := &fakeList{values: marshalWire(t, wire("crime_1", "2024-03-05"), wire("crime_2", "2024-03-04"))}

	records, err := NewRedisSource(list, "", newTestLogger()).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "crime_1", records[0].ID)
}

func TestRedisSource_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		list    *fakeList
		errText string
	}{
		{"redis error", &fakeList{err: errors.New("connection refused")}, "failed to read"},
		{"empty", &fakeList{}, "is empty"},
		{"bad json", &fakeList{values: []string{"{"}}, "failed to unmarshal element 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedisSource(tt.list, "k", newTestLogger()).Load(context.Background())

			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestRedisSource_SeedThenLoad(t *testing.T) {
	list := &fakeList{}
	src := NewRedisSource(list, DefaultRedisKey, newTestLogger())
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	generated := NewGenerator(20, 3).WithClock(func() time.Time { return now }).Generate()

	require.NoError(t, src.Seed(context.Background(), generated))
	records, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, len(generated))
	for i := range generated {
		assert.Equal(t, generated[i].ID, records[i].ID)
		assert.True(t, generated[i].Date.Equal(records[i].Date))
	}
}
