package algorithm

import (
	"gonum.org/v1/gonum/stat"

	"crackInsightBackend/internal/core/domain"
)

// SuggestHashrate picks a realistic brute-force throughput for algorithmID
// from past run summaries, falling back to the live session and finally to
// a 10 GH/s placeholder.
func SuggestHashrate(algorithmID string, summaries []domain.HistoricalRunSummary, live *domain.LiveReading) domain.HashrateSuggestion {
	var bruteforce []float64
	best := 0.0
	matched := 0
	for _, s := range summaries {
		if s.AlgorithmID != algorithmID || s.AvgHashrate <= 0 {
			continue
		}
		matched++
		if s.AttackMode == domain.AttackModeBruteForce {
			bruteforce = append(bruteforce, s.AvgHashrate)
		}
		if s.AvgHashrate > best {
			best = s.AvgHashrate
		}
	}

	switch {
	case len(bruteforce) > 0:
		return domain.HashrateSuggestion{
			Value:    stat.Mean(bruteforce, nil) / domain.HashratePerGigahash,
			Detected: true,
			Source:   domain.SourceBruteforce,
		}
	case matched > 0:
		// wordlist and rule runs under-report pure mask throughput
		return domain.HashrateSuggestion{
			Value:    best * domain.CompensationFactor / domain.HashratePerGigahash,
			Detected: true,
			Source:   domain.SourceCompensated,
		}
	case live != nil && live.AlgorithmID == algorithmID && live.HashrateHz > 0:
		return domain.HashrateSuggestion{
			Value:    live.HashrateHz / domain.HashratePerGigahash,
			Detected: true,
			Source:   domain.SourceManual,
		}
	}

	return domain.HashrateSuggestion{
		Value:    domain.DefaultHashrateGHs,
		Detected: false,
		Source:   domain.SourceManual,
	}
}
