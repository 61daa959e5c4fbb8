package desktop

import "crackInsightBackend/internal/core/domain"

type Config struct {
	ResultsPath   string
	SaveResults   bool
	HashrateGHs   float64
	TimeBudget    string
	MinMaskLength int
	SortMode      domain.SortMode
}

func NewDefaultConfig() *Config {
	return &Config{
		ResultsPath:   "./results",
		SaveResults:   true,
		HashrateGHs:   domain.DefaultHashrateGHs,
		TimeBudget:    "24h",
		MinMaskLength: 0,
		SortMode:      domain.SortByOccurrence,
	}
}
