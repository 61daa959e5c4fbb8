package potfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"crackInsightBackend/internal/core/domain"
)

// ReadSummaries decodes a JSON array of past run summaries, as exported by
// session bookkeeping. Hashrates are in H/s.
func ReadSummaries(r io.Reader) ([]domain.HistoricalRunSummary, error) {
	var summaries []domain.HistoricalRunSummary
	if err := json.NewDecoder(r).Decode(&summaries); err != nil {
		return nil, fmt.Errorf("decoding run summaries: %w", err)
	}
	for i, s := range summaries {
		if s.AlgorithmID == "" {
			return nil, fmt.Errorf("run summary %d has no algorithmId", i)
		}
	}
	return summaries, nil
}

func ReadSummariesFile(path string) ([]domain.HistoricalRunSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening run summaries: %w", err)
	}
	defer file.Close()
	return ReadSummaries(file)
}
