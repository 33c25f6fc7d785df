package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RECORD_SOURCE", SourceGenerator)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, SourceGenerator, cfg.RecordSource)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 10000, cfg.RemoteLimit)
	assert.Equal(t, 2000, cfg.SampleSize)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, "incident_records", cfg.RedisRecordsKey)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RECORD_SOURCE", "HTTP")
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("REMOTE_LIMIT", "2500")
	t.Setenv("SAMPLE_SEED", "42")
	t.Setenv("REDIS_SEED_SAMPLE", "true")
	t.Setenv("TOP_N", "5")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, SourceHTTP, cfg.RecordSource)
	assert.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 2500, cfg.RemoteLimit)
	assert.Equal(t, uint64(42), cfg.SampleSeed)
	assert.True(t, cfg.RedisSeedSample)
	assert.Equal(t, 5, cfg.TopN)
}

func TestLoadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("RECORD_SOURCE", SourceGenerator)
	t.Setenv("SAMPLE_SIZE", "many")
	t.Setenv("REMOTE_TIMEOUT", "soon")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.SampleSize)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		errText string
	}{
		{"generator", Config{RecordSource: SourceGenerator, SampleSize: 1}, ""},
		{"postgres without url", Config{RecordSource: SourcePostgres, SampleSize: 1}, "DATABASE_URL"},
		{"postgres with url", Config{RecordSource: SourcePostgres, SampleSize: 1, DatabaseURL: "postgres://x"}, ""},
		{"http without limit", Config{RecordSource: SourceHTTP, SampleSize: 1}, "REMOTE_LIMIT"},
		{"http with limit", Config{RecordSource: SourceHTTP, SampleSize: 1, RemoteLimit: 100}, ""},
		{"unknown", Config{RecordSource: "kafka", SampleSize: 1}, "unknown RECORD_SOURCE"},
		{"sample size", Config{RecordSource: SourceRedis}, "SAMPLE_SIZE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errText == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}
