package potfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crackInsightBackend/internal/core/domain"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantHash  string
		wantPlain string
		wantOK    bool
	}{
		{"Plain pair", "8846f7eaee8fb117ad06bdd830b7586c:password", "8846f7eaee8fb117ad06bdd830b7586c", "password", true},
		{"Salted hash", "d41d8cd98f00b204:s4lt:Summer2024", "d41d8cd98f00b204:s4lt", "Summer2024", true},
		{"Hex plaintext", "abc:$HEX[70617373]", "abc", "$HEX[70617373]", true},
		{"Empty plaintext", "abc:", "abc", "", true},
		{"No separator", "justahash", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, ok := ParseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHash, pair.Hash)
			assert.Equal(t, tt.wantPlain, pair.PlaintextRaw)
		})
	}
}

func TestRead(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	input := "h1:password\r\n\nbroken\nh2:abc123\nh3:$HEX[313233]\n"

	pairs, stats, err := Read(strings.NewReader(input), Options{AlgorithmID: "0", Timestamp: ts})

	require.NoError(t, err)
	assert.Equal(t, Stats{Lines: 5, Pairs: 3, Blank: 1, Malformed: 1}, stats)
	require.Len(t, pairs, 3)
	assert.Equal(t, "password", pairs[0].PlaintextRaw)
	assert.Equal(t, "abc123", pairs[1].PlaintextRaw)
	assert.Equal(t, "$HEX[313233]", pairs[2].PlaintextRaw)
	for _, pair := range pairs {
		assert.Equal(t, "0", pair.AlgorithmID)
		assert.Equal(t, ts, pair.Timestamp)
	}
}

func TestRead_DefaultTimestamp(t *testing.T) {
	before := time.Now()
	pairs, _, err := Read(strings.NewReader("h:p\n"), Options{})

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.False(t, pairs[0].Timestamp.Before(before))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashcat.potfile")
	require.NoError(t, os.WriteFile(path, []byte("h1:letmein\nh2:letmein\n"), 0644))

	pairs, stats, err := ReadFile(path, Options{AlgorithmID: "1000"})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Pairs)
	assert.Len(t, pairs, 2)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}

func TestMemoryRepository_ListPairs(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	repo := NewMemoryRepository([]domain.RecoveredPair{
		{Hash: "a", PlaintextRaw: "one", AlgorithmID: "0", Timestamp: day(1)},
		{Hash: "b", PlaintextRaw: "two", AlgorithmID: "1000", Timestamp: day(2)},
		{Hash: "c", PlaintextRaw: "three", AlgorithmID: "0", Timestamp: day(3)},
		{Hash: "d", PlaintextRaw: "four", AlgorithmID: "0", Timestamp: day(4)},
	}, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.CorpusFilter
		want   []string
	}{
		{"Everything", domain.CorpusFilter{}, []string{"one", "two", "three", "four"}},
		{"By algorithm", domain.CorpusFilter{AlgorithmID: "0"}, []string{"one", "three", "four"}},
		{"Time window", domain.CorpusFilter{Since: day(2), Until: day(3)}, []string{"two", "three"}},
		{"Limit after filter", domain.CorpusFilter{AlgorithmID: "0", Limit: 2}, []string{"one", "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := repo.ListPairs(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]string, 0, len(pairs))
			for _, p := range pairs {
				got = append(got, p.PlaintextRaw)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryRepository_Snapshots(t *testing.T) {
	repo := NewMemoryRepository(nil, []domain.HistoricalRunSummary{
		{AlgorithmID: "0", AttackMode: 3, AvgHashrate: 1e10},
		{AlgorithmID: "1000", AttackMode: 0, AvgHashrate: 5e9},
	})
	ctx := context.Background()

	summaries, err := repo.ListRunSummaries(ctx, "1000")
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	_, err = repo.GetSnapshot(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	snapshot := &domain.Snapshot{ID: "s1", Name: "baseline", Result: &domain.AnalysisResult{Total: 4}}
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot))
	snapshot.Name = "changed"

	got, err := repo.GetSnapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "baseline", got.Name)
	assert.Equal(t, uint64(4), got.Result.Total)
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryRepository([]domain.RecoveredPair{{PlaintextRaw: "x"}}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListPairs(ctx, domain.CorpusFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadSummaries(t *testing.T) {
	summaries, err := ReadSummaries(strings.NewReader(`[
		{"algorithmId":"1000","attackMode":3,"avgHashrate":4e10},
		{"algorithmId":"0","attackMode":0,"avgHashrate":2.5e9}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.HistoricalRunSummary{
		{AlgorithmID: "1000", AttackMode: 3, AvgHashrate: 4e10},
		{AlgorithmID: "0", AttackMode: 0, AvgHashrate: 2.5e9},
	}, summaries)

	_, err = ReadSummaries(strings.NewReader(`[{"attackMode":3}]`))
	assert.Error(t, err)
	_, err = ReadSummaries(strings.NewReader(`{`))
	assert.Error(t, err)
	_, err = ReadSummariesFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
