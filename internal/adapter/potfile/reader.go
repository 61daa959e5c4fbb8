package potfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"crackInsightBackend/internal/core/domain"
)

const maxLineSize = 1024 * 1024

// Stats describes one pass over a potfile.
type Stats struct {
	Lines     int `json:"lines"`
	Pairs     int `json:"pairs"`
	Blank     int `json:"blank"`
	Malformed int `json:"malformed"`
}

// Options tag every pair read from a potfile. A zero Timestamp is replaced
// by the time the read started.
type Options struct {
	AlgorithmID string
	Timestamp   time.Time
}

// Read parses hashcat potfile or outfile lines of the form hash:plain. The
// line is split on its last colon so salted hashes keep their salt. Blank
// lines are skipped; lines without a colon are skipped and counted as
// malformed.
func Read(r io.Reader, opts Options) ([]domain.RecoveredPair, Stats, error) {
	if opts.Timestamp.IsZero() {
		opts.Timestamp = time.Now()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var stats Stats
	pairs := []domain.RecoveredPair{}
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			stats.Blank++
			continue
		}

		pair, ok := ParseLine(line)
		if !ok {
			stats.Malformed++
			continue
		}
		pair.AlgorithmID = opts.AlgorithmID
		pair.Timestamp = opts.Timestamp
		pairs = append(pairs, pair)
		stats.Pairs++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading potfile at line %d: %w", stats.Lines+1, err)
	}

	return pairs, stats, nil
}

func ReadFile(path string, opts Options) ([]domain.RecoveredPair, Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("opening potfile: %w", err)
	}
	defer file.Close()

	return Read(file, opts)
}

// ParseLine splits one non-empty potfile line. The plaintext keeps any
// $HEX[...] encoding; decoding is left to the analyzer.
func ParseLine(line string) (domain.RecoveredPair, bool) {
	idx := strings.LastIndexByte(line, ':')
	if idx < 0 {
		return domain.RecoveredPair{}, false
	}
	return domain.RecoveredPair{
		Hash:         line[:idx],
		PlaintextRaw: line[idx+1:],
	}, true
}
