package potfile

import (
	"context"
	"sync"

	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/port"
)

// MemoryRepository serves a corpus loaded from potfiles. Snapshots live
// only as long as the process.
type MemoryRepository struct {
	mu        sync.RWMutex
	pairs     []domain.RecoveredPair
	summaries []domain.HistoricalRunSummary
	snapshots map[string]*domain.Snapshot
}

func NewMemoryRepository(pairs []domain.RecoveredPair, summaries []domain.HistoricalRunSummary) *MemoryRepository {
	return &MemoryRepository{
		pairs:     pairs,
		summaries: summaries,
		snapshots: make(map[string]*domain.Snapshot),
	}
}

var _ port.Repository = (*MemoryRepository)(nil)

// AddPairs appends pairs to the corpus, e.g. from a second potfile.
func (r *MemoryRepository) AddPairs(pairs ...domain.RecoveredPair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs = append(r.pairs, pairs...)
}

func (r *MemoryRepository) ListPairs(ctx context.Context, filter domain.CorpusFilter) ([]domain.RecoveredPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := []domain.RecoveredPair{}
	for _, pair := range r.pairs {
		if filter.Limit > 0 && len(pairs) >= filter.Limit {
			break
		}
		if filter.AlgorithmID != "" && pair.AlgorithmID != filter.AlgorithmID {
			continue
		}
		if !filter.Since.IsZero() && pair.Timestamp.Before(filter.Since) {
			continue
		}
		if !filter.Until.IsZero() && pair.Timestamp.After(filter.Until) {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func (r *MemoryRepository) ListRunSummaries(ctx context.Context, algorithmID string) ([]domain.HistoricalRunSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summaries []domain.HistoricalRunSummary
	for _, s := range r.summaries {
		if algorithmID == "" || s.AlgorithmID == algorithmID {
			summaries = append(summaries, s)
		}
	}
	return summaries, nil
}

func (r *MemoryRepository) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *snapshot
	r.snapshots[snapshot.ID] = &stored
	return nil
}

func (r *MemoryRepository) GetSnapshot(ctx context.Context, snapshotID string) (*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, exists := r.snapshots[snapshotID]
	if !exists {
		return nil, domain.ErrSnapshotNotFound
	}
	out := *snapshot
	return &out, nil
}
