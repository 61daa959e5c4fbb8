package algorithm

import (
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/utils/wordlist"
)

// UniquePlaintexts decodes every pair and returns the distinct non-empty
// plaintexts in corpus order.
func UniquePlaintexts(pairs []domain.RecoveredPair) []string {
	decoded := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		decoded = append(decoded, DecodePlaintext(pair.PlaintextRaw))
	}
	return wordlist.Dedup(decoded)
}

func WordlistBody(pairs []domain.RecoveredPair) string {
	return wordlist.Body(UniquePlaintexts(pairs))
}
