package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Analyzer AnalyzerConfig `json:"analyzer"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type ServerConfig struct {
	Address   string  `json:"address"`
	RateLimit float64 `json:"rateLimit"` // analysis submissions per second
	RateBurst int     `json:"rateBurst"`
}

type AnalyzerConfig struct {
	DefaultThroughputHz float64 `json:"defaultThroughputHz"`
	Shards              int     `json:"shards"`
	ShardThreshold      int     `json:"shardThreshold"`
	MaxMasks            int     `json:"maxMasks"`
	MaxPasswords        int     `json:"maxPasswords"`
	MaxBaseWords        int     `json:"maxBaseWords"`
	MaxAffixes          int     `json:"maxAffixes"`
}

type MetricsConfig struct {
	ReportPath      string        `json:"reportPath"`
	CollectInterval Duration `json:"collectInterval"`
}

func DefaultConfig() Config {
	return Config{
		Database: *NewDatabaseConfig(),
		Server: ServerConfig{
			Address:   ":8080",
			RateLimit: 2,
			RateBurst: 5,
		},
		Analyzer: AnalyzerConfig{
			DefaultThroughputHz: 1e9,
			Shards:              4,
			ShardThreshold:      200000,
			MaxMasks:            1000,
			MaxPasswords:        50,
			MaxBaseWords:        50,
			MaxAffixes:          20,
		},
		Metrics: MetricsConfig{
			ReportPath:      "analysis_metrics.log",
			CollectInterval: Duration(time.Second),
		},
	}
}

func ValidateConfig(config *Config) error {
	if config.Analyzer.DefaultThroughputHz <= 0 {
		return fmt.Errorf("DefaultThroughputHz must be positive")
	}
	if config.Analyzer.Shards < 1 {
		return fmt.Errorf("Shards must be positive")
	}
	if config.Analyzer.ShardThreshold < 0 {
		return fmt.Errorf("ShardThreshold must not be negative")
	}
	if config.Analyzer.MaxMasks < 1 || config.Analyzer.MaxPasswords < 1 ||
		config.Analyzer.MaxBaseWords < 1 || config.Analyzer.MaxAffixes < 1 {
		return fmt.Errorf("result caps must be positive")
	}
	if config.Metrics.CollectInterval <= 0 {
		return fmt.Errorf("CollectInterval must be positive")
	}
	if config.Server.RateLimit <= 0 || config.Server.RateBurst < 1 {
		return fmt.Errorf("invalid rate limit")
	}
	return nil
}

// LoadConfig overlays the JSON file at path on DefaultConfig. An empty
// path yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, ValidateConfig(&config)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config: %w", err)
	}

	return config, ValidateConfig(&config)
}
