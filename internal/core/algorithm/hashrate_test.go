package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crackInsightBackend/internal/core/domain"
)

func TestSuggestHashrate(t *testing.T) {
	tests := []struct {
		name      string
		summaries []domain.HistoricalRunSummary
		live      *domain.LiveReading
		want      domain.HashrateSuggestion
	}{
		{
			name: "Brute force runs are averaged",
			summaries: []domain.HistoricalRunSummary{
				{AlgorithmID: "1000", AttackMode: 3, AvgHashrate: 2e9},
				{AlgorithmID: "1000", AttackMode: 3, AvgHashrate: 4e9},
				{AlgorithmID: "1000", AttackMode: 0, AvgHashrate: 9e9},
				{AlgorithmID: "0", AttackMode: 3, AvgHashrate: 100e9},
				{AlgorithmID: "1000", AttackMode: 3, AvgHashrate: 0},
			},
			live: &domain.LiveReading{AlgorithmID: "1000", HashrateHz: 50e9},
			want: domain.HashrateSuggestion{Value: 3, Detected: true, Source: domain.SourceBruteforce},
		},
		{
			name: "Wordlist runs are compensated",
			summaries: []domain.HistoricalRunSummary{
				{AlgorithmID: "1000", AttackMode: 0, AvgHashrate: 2e9},
				{AlgorithmID: "1000", AttackMode: 6, AvgHashrate: 5e9},
			},
			want: domain.HashrateSuggestion{Value: 7, Detected: true, Source: domain.SourceCompensated},
		},
		{
			name:      "Live session of the same algorithm",
			summaries: []domain.HistoricalRunSummary{{AlgorithmID: "0", AttackMode: 3, AvgHashrate: 1e9}},
			live:      &domain.LiveReading{AlgorithmID: "1000", HashrateHz: 1.5e9},
			want:      domain.HashrateSuggestion{Value: 1.5, Detected: true, Source: domain.SourceManual},
		},
		{
			name: "Live session of another algorithm",
			live: &domain.LiveReading{AlgorithmID: "0", HashrateHz: 1.5e9},
			want: domain.HashrateSuggestion{Value: 10, Detected: false, Source: domain.SourceManual},
		},
		{
			name: "Nothing known",
			want: domain.HashrateSuggestion{Value: 10, Detected: false, Source: domain.SourceManual},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestHashrate("1000", tt.summaries, tt.live)

			assert.InDelta(t, tt.want.Value, got.Value, 1e-9)
			assert.Equal(t, tt.want.Detected, got.Detected)
			assert.Equal(t, tt.want.Source, got.Source)
		})
	}
}

func TestHashrateSuggestion_ThroughputHz(t *testing.T) {
	s := domain.HashrateSuggestion{Value: 2.5}
	assert.Equal(t, 2.5e9, s.ThroughputHz())
}
