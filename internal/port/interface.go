package port

import (
	"context"

	"crackInsightBackend/internal/core/domain"
)

type AnalysisService interface {
	StartAnalysis(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisJob, error)
	GetJob(ctx context.Context, jobID string) (*domain.AnalysisJob, error)
	Analyze(ctx context.Context, pairs []domain.RecoveredPair, throughputHz float64) (*domain.AnalysisResult, error)
	AnalyzeLive(ctx context.Context, pairs []domain.RecoveredPair, throughputHz float64) (*domain.AnalysisResult, error)
	SuggestHashrate(ctx context.Context, algorithmID string) (domain.HashrateSuggestion, error)
	SelectMasks(ctx context.Context, req domain.MaskSelectionRequest) (domain.DisplayedSelection, error)
	RuleFile(ctx context.Context) (string, error)
	ExportWordlist(ctx context.Context, filter domain.CorpusFilter) (string, error)
	SaveSnapshot(ctx context.Context, name string) (*domain.Snapshot, error)
	ViewSnapshot(ctx context.Context, snapshotID string) (*domain.Snapshot, error)
	Current() (*domain.AnalysisResult, domain.ViewMode, uint64)
}

// Repository is the persistence collaborator: it owns the recovered corpus,
// past run summaries and saved snapshots.
type Repository interface {
	ListPairs(ctx context.Context, filter domain.CorpusFilter) ([]domain.RecoveredPair, error)
	ListRunSummaries(ctx context.Context, algorithmID string) ([]domain.HistoricalRunSummary, error)
	SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error
	GetSnapshot(ctx context.Context, snapshotID string) (*domain.Snapshot, error)
}

// LiveSession exposes the hashrate of a running cracking session, if any.
type LiveSession interface {
	Reading(ctx context.Context) (*domain.LiveReading, error)
}
