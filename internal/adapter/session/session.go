package session

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/port"
)

// Static reports a fixed reading, typically taken from command-line flags.
type Static struct {
	reading domain.LiveReading
}

func NewStatic(algorithmID string, hashrateHz float64) *Static {
	return &Static{reading: domain.LiveReading{AlgorithmID: algorithmID, HashrateHz: hashrateHz}}
}

// Reading returns nil when no positive hashrate was configured.
func (s *Static) Reading(ctx context.Context) (*domain.LiveReading, error) {
	if s.reading.HashrateHz <= 0 {
		return nil, nil
	}
	reading := s.reading
	return &reading, nil
}

// StatusFile follows the output of `hashcat --status --status-json`, one
// JSON object per line. The newest line with device speeds wins.
type StatusFile struct {
	path        string
	algorithmID string
}

func NewStatusFile(path, algorithmID string) *StatusFile {
	return &StatusFile{path: path, algorithmID: algorithmID}
}

type statusLine struct {
	Devices []struct {
		Speed float64 `json:"speed"`
	} `json:"devices"`
}

func (s *StatusFile) Reading(ctx context.Context) (*domain.LiveReading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading hashcat status: %w", err)
	}

	hashrate, ok := lastSpeed(data)
	if !ok {
		return nil, nil
	}
	return &domain.LiveReading{AlgorithmID: s.algorithmID, HashrateHz: hashrate}, nil
}

// lastSpeed sums the device speeds of the last status line that has any.
// Interleaved non-JSON output is ignored.
func lastSpeed(data []byte) (float64, bool) {
	var (
		hashrate float64
		found    bool
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var status statusLine
		if json.Unmarshal(line, &status) != nil || len(status.Devices) == 0 {
			continue
		}
		sum := 0.0
		for _, d := range status.Devices {
			sum += d.Speed
		}
		hashrate, found = sum, true
	}
	return hashrate, found && hashrate > 0
}

var (
	_ port.LiveSession = (*Static)(nil)
	_ port.LiveSession = (*StatusFile)(nil)
)
