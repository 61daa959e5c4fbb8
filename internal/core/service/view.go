package service

import (
	"sync"

	"crackInsightBackend/internal/core/domain"
)

// ResultView is the consumer side of asynchronous analysis. Every live
// request and every snapshot switch issues a new generation; a result is
// applied only if it carries the latest one, so a slow live analysis can
// never overwrite a snapshot the caller switched to in the meantime.
type ResultView struct {
	mu         sync.RWMutex
	generation uint64
	mode       domain.ViewMode
	result     *domain.AnalysisResult
	snapshotID string
}

func NewResultView() *ResultView {
	return &ResultView{mode: domain.ViewLive}
}

// BeginLive switches to live mode and returns the generation the next
// analysis result must carry.
func (v *ResultView) BeginLive() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	v.mode = domain.ViewLive
	v.snapshotID = ""
	return v.generation
}

// ShowSnapshot displays a saved result and supersedes any in-flight live
// analysis.
func (v *ResultView) ShowSnapshot(snapshot *domain.Snapshot) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	v.mode = domain.ViewSnapshot
	v.result = snapshot.Result
	v.snapshotID = snapshot.ID
	return v.generation
}

// Apply installs tagged.Result if its generation is still current and
// reports whether it did.
func (v *ResultView) Apply(tagged domain.TaggedResult) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if tagged.Generation != v.generation || v.mode != domain.ViewLive {
		return false
	}
	v.result = tagged.Result
	return true
}

// Current returns the displayed result, the view mode and the latest
// issued generation. The result is nil until something was applied.
func (v *ResultView) Current() (*domain.AnalysisResult, domain.ViewMode, uint64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.result, v.mode, v.generation
}

// SnapshotID is the id of the displayed snapshot, empty in live mode.
func (v *ResultView) SnapshotID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshotID
}
