package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, ValidateConfig(&cfg))
	assert.Equal(t, 1e9, cfg.Analyzer.DefaultThroughputHz)
	assert.Equal(t, 1000, cfg.Analyzer.MaxMasks)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Zero throughput", mutate: func(c *Config) { c.Analyzer.DefaultThroughputHz = 0 }},
		{name: "No shards", mutate: func(c *Config) { c.Analyzer.Shards = 0 }},
		{name: "Negative threshold", mutate: func(c *Config) { c.Analyzer.ShardThreshold = -1 }},
		{name: "Zero mask cap", mutate: func(c *Config) { c.Analyzer.MaxMasks = 0 }},
		{name: "Zero rate", mutate: func(c *Config) { c.Server.RateLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, ValidateConfig(&cfg))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":{"address":":9090"},"analyzer":{"shards":8}}`), 0644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 8, cfg.Analyzer.Shards)
	assert.Equal(t, 1000, cfg.Analyzer.MaxMasks)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	db := NewDatabaseConfig()
	db.Password = "s3cret"

	assert.Equal(t, "root:s3cret@tcp(localhost:3306)/crack_insight?parseTime=true", db.GetDSN())
	assert.True(t, db.Enabled())
}

func TestLoadConfig_DurationStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database": {"connMaxLifetime": "90s"},
		"metrics": {"collectInterval": "250ms"}
	}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Database.ConnMaxLifetime.Std())
	assert.Equal(t, 250*time.Millisecond, cfg.Metrics.CollectInterval.Std())

	for _, body := range []string{
		`{"metrics": {"collectInterval": 1}}`,
		`{"metrics": {"collectInterval": "soon"}}`,
		`{"metrics": {"collectInterval": "-1s"}}`,
	} {
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, body)
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(DefaultConfig().Metrics)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reportPath":"analysis_metrics.log","collectInterval":"1s"}`, string(data))
}

func TestDatabaseConfig_Enabled(t *testing.T) {
	db := NewDatabaseConfig()
	assert.True(t, db.Enabled())

	db.Host = ""
	assert.False(t, db.Enabled())
}
