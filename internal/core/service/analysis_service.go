package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"crackInsightBackend/internal/config"
	"crackInsightBackend/internal/core/algorithm"
	"crackInsightBackend/internal/core/domain"
	"crackInsightBackend/internal/pkg/concurrency"
	"crackInsightBackend/internal/pkg/metrics"
	"crackInsightBackend/internal/port"
	"crackInsightBackend/internal/utils/random"
)

const (
	MetricsUpdateInterval = time.Second
	MaxCachedResults      = 32
	cancelCheckInterval   = 8192
)

type jobEntry struct {
	mu  sync.RWMutex
	job domain.AnalysisJob
}

type AnalysisService struct {
	repo        port.Repository
	live        port.LiveSession
	log         logrus.FieldLogger
	cfg         config.AnalyzerConfig
	metrics     *metrics.Collector
	reporter    *metrics.Reporter
	view        *ResultView
	activeJobs  sync.Map
	resultCache *sync.Map
	cached      atomic.Int64
	wg          sync.WaitGroup
}

var _ port.AnalysisService = (*AnalysisService)(nil)

// NewAnalysisService wires the analysis engine to its collaborators. live
// and reporter may be nil.
func NewAnalysisService(
	repo port.Repository,
	live port.LiveSession,
	cfg config.Config,
	logger logrus.FieldLogger,
	reporter *metrics.Reporter,
) *AnalysisService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	interval := cfg.Metrics.CollectInterval.Std()
	if interval <= 0 {
		interval = MetricsUpdateInterval
	}

	return &AnalysisService{
		repo:        repo,
		live:        live,
		log:         logger,
		cfg:         cfg.Analyzer,
		metrics:     metrics.NewCollector(interval),
		reporter:    reporter,
		view:        NewResultView(),
		resultCache: &sync.Map{},
	}
}

// StartAnalysis registers a job for the corpus selected by req.Filter and
// runs it in the background. The job's generation decides whether its
// result is still displayed when it completes.
func (s *AnalysisService) StartAnalysis(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisJob, error) {
	if req.Filter.Limit < 0 {
		return nil, fmt.Errorf("invalid corpus limit %d", req.Filter.Limit)
	}

	entry := &jobEntry{job: domain.AnalysisJob{
		ID:         random.GenerateUUID(),
		Generation: s.view.BeginLive(),
		Status:     domain.StatusPending,
		StartTime:  time.Now(),
		Request:    req,
	}}
	s.activeJobs.Store(entry.job.ID, entry)
	snapshot := entry.snapshot()

	s.log.WithFields(logrus.Fields{
		"jobId":      snapshot.ID,
		"generation": snapshot.Generation,
	}).Info("analysis queued")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runAnalysis(context.WithoutCancel(ctx), entry)
	}()

	return &snapshot, nil
}

func (s *AnalysisService) runAnalysis(ctx context.Context, entry *jobEntry) {
	job := entry.snapshot()
	logger := s.log.WithFields(logrus.Fields{
		"jobId":      job.ID,
		"generation": job.Generation,
	})

	entry.update(func(j *domain.AnalysisJob) { j.Status = domain.StatusRunning })
	s.metrics.StartCollection(job.ID)

	pairs, err := s.repo.ListPairs(ctx, job.Request.Filter)
	if err != nil {
		s.failJob(entry, logger, fmt.Errorf("loading corpus: %w", err))
		return
	}
	entry.update(func(j *domain.AnalysisJob) { j.Pairs = len(pairs) })

	throughput := s.resolveThroughput(ctx, job.Request.ThroughputHz)
	result, err := s.analyze(ctx, job.ID, pairs, throughput)
	if err != nil {
		s.failJob(entry, logger, err)
		return
	}

	resources := s.metrics.StopCollection(job.ID)
	entry.update(func(j *domain.AnalysisJob) {
		j.Status = domain.StatusComplete
		j.EndTime = time.Now()
		j.Result = result
		j.ResourceMetrics = resources
	})
	done := entry.snapshot()

	fields := logrus.Fields{
		"pairs":    len(pairs),
		"total":    result.Total,
		"duration": done.EndTime.Sub(done.StartTime),
	}
	if !s.view.Apply(domain.TaggedResult{Generation: job.Generation, JobID: job.ID, Result: result}) {
		logger.WithFields(fields).Debug("discarding stale analysis result")
		return
	}
	logger.WithFields(fields).Info("analysis complete")
}

func (s *AnalysisService) failJob(entry *jobEntry, logger logrus.FieldLogger, err error) {
	resources := s.metrics.StopCollection(entry.snapshot().ID)
	entry.update(func(j *domain.AnalysisJob) {
		j.Status = domain.StatusFailed
		j.EndTime = time.Now()
		j.ErrorMessage = err.Error()
		j.ResourceMetrics = resources
	})
	logger.WithError(err).Error("analysis failed")
}

// resolveThroughput prefers the caller's figure, then the live session,
// then the configured placeholder.
func (s *AnalysisService) resolveThroughput(ctx context.Context, requested float64) float64 {
	if requested > 0 {
		return requested
	}
	if reading := s.liveReading(ctx); reading != nil && reading.HashrateHz > 0 {
		return reading.HashrateHz
	}
	if s.cfg.DefaultThroughputHz > 0 {
		return s.cfg.DefaultThroughputHz
	}
	return domain.DefaultThroughputHz
}

func (s *AnalysisService) liveReading(ctx context.Context) *domain.LiveReading {
	if s.live == nil {
		return nil
	}
	reading, err := s.live.Reading(ctx)
	if err != nil {
		s.log.WithError(err).Warn("live session unavailable")
		return nil
	}
	return reading
}

func (s *AnalysisService) GetJob(ctx context.Context, jobID string) (*domain.AnalysisJob, error) {
	value, exists := s.activeJobs.Load(jobID)
	if !exists {
		return nil, domain.ErrJobNotFound
	}
	job := value.(*jobEntry).snapshot()
	if job.Status == domain.StatusRunning {
		if m := s.metrics.GetMetrics(jobID); m != nil {
			job.ResourceMetrics = *m
		}
	}
	return &job, nil
}

// Analyze runs the corpus pass synchronously. Identical corpora analyzed at
// the same throughput share a cached result, which callers must not modify.
func (s *AnalysisService) Analyze(ctx context.Context, pairs []domain.RecoveredPair, throughputHz float64) (*domain.AnalysisResult, error) {
	return s.analyze(ctx, "", pairs, throughputHz)
}

// AnalyzeLive analyzes pairs synchronously and displays the result as a new
// live generation, so masks and rules can be derived from it. A snapshot
// switch during the pass wins and the result is only returned.
func (s *AnalysisService) AnalyzeLive(ctx context.Context, pairs []domain.RecoveredPair, throughputHz float64) (*domain.AnalysisResult, error) {
	generation := s.view.BeginLive()
	result, err := s.analyze(ctx, "", pairs, throughputHz)
	if err != nil {
		return nil, err
	}

	logger := s.log.WithFields(logrus.Fields{
		"generation": generation,
		"pairs":      len(pairs),
		"total":      result.Total,
	})
	if !s.view.Apply(domain.TaggedResult{Generation: generation, Result: result}) {
		logger.Debug("discarding stale analysis result")
		return result, nil
	}
	logger.Info("analysis displayed")
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, jobID string, pairs []domain.RecoveredPair, throughputHz float64) (*domain.AnalysisResult, error) {
	if throughputHz <= 0 {
		throughputHz = s.resolveThroughput(ctx, 0)
	}

	key := fingerprint(pairs, throughputHz)
	if cached, ok := s.resultCache.Load(key); ok {
		s.log.WithField("jobId", jobID).Debug("analysis served from cache")
		return cached.(*domain.AnalysisResult), nil
	}

	var acc *algorithm.Accumulator
	var err error
	perf := metrics.CapturePerformance("analysis", len(pairs), func() {
		acc, err = s.accumulate(ctx, jobID, pairs)
	})
	if err != nil {
		return nil, err
	}

	result := acc.ResultWithLimits(throughputHz, s.limits())
	s.log.WithFields(logrus.Fields{
		"jobId":       jobID,
		"duration":    perf.Duration,
		"pairsPerSec": perf.ItemsPerSecond(),
	}).Debug("corpus pass finished")
	if s.reporter != nil {
		s.reporter.Record("analysis", perf)
	}
	s.storeResult(key, result)
	return result, nil
}

// accumulate runs a single pass, or shards the corpus over a worker pool
// and merges the shard accumulators in corpus order.
func (s *AnalysisService) accumulate(ctx context.Context, jobID string, pairs []domain.RecoveredPair) (*algorithm.Accumulator, error) {
	shards := s.cfg.Shards
	if shards < 2 || len(pairs) <= s.cfg.ShardThreshold || len(pairs) < shards {
		acc, err := accumulateRange(ctx, pairs)
		if err == nil && jobID != "" {
			s.metrics.UpdatePairs(jobID, int64(len(pairs)), 1)
		}
		return acc, err
	}

	size := (len(pairs) + shards - 1) / shards
	tasks := make([]concurrency.Task, 0, shards)
	for start := 0; start < len(pairs); start += size {
		end := start + size
		if end > len(pairs) {
			end = len(pairs)
		}
		chunk := pairs[start:end]
		index := len(tasks)
		tasks = append(tasks, concurrency.Task{
			ID:    fmt.Sprintf("%s-shard-%d", jobID, index),
			JobID: jobID,
			Index: index,
			Function: func(ctx context.Context) (interface{}, error) {
				return accumulateRange(ctx, chunk)
			},
		})
	}

	pool := concurrency.NewWorkerPool(len(tasks))
	results, err := pool.RunAll(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("sharded analysis: %w", err)
	}

	merged := algorithm.NewAccumulator()
	for _, r := range results {
		if r.Error != nil {
			return nil, fmt.Errorf("shard %d: %w", r.Index, r.Error)
		}
		merged.Merge(r.Value.(*algorithm.Accumulator))
	}

	if jobID != "" {
		s.metrics.UpdatePairs(jobID, int64(len(pairs)), len(tasks))
	}
	s.log.WithFields(logrus.Fields{
		"jobId":        jobID,
		"shards":       len(tasks),
		"pairs":        len(pairs),
		"shardLatency": pool.GetMetrics().AverageLatency,
	}).Debug("merged shard accumulators")
	return merged, nil
}

func accumulateRange(ctx context.Context, pairs []domain.RecoveredPair) (*algorithm.Accumulator, error) {
	acc := algorithm.NewAccumulator()
	for i, pair := range pairs {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		acc.AddPair(pair)
	}
	return acc, nil
}

func (s *AnalysisService) limits() algorithm.Limits {
	limits := algorithm.DefaultLimits()
	if s.cfg.MaxMasks > 0 {
		limits.Masks = s.cfg.MaxMasks
	}
	if s.cfg.MaxPasswords > 0 {
		limits.Passwords = s.cfg.MaxPasswords
	}
	if s.cfg.MaxBaseWords > 0 {
		limits.BaseWords = s.cfg.MaxBaseWords
	}
	if s.cfg.MaxAffixes > 0 {
		limits.Affixes = s.cfg.MaxAffixes
	}
	return limits
}

func (s *AnalysisService) storeResult(key uint64, result *domain.AnalysisResult) {
	if s.cached.Load() >= MaxCachedResults {
		s.resultCache.Range(func(k, _ interface{}) bool {
			s.resultCache.Delete(k)
			return true
		})
		s.cached.Store(0)
	}
	if _, loaded := s.resultCache.LoadOrStore(key, result); !loaded {
		s.cached.Add(1)
	}
}

// fingerprint identifies a corpus and throughput. Plaintexts are length
// prefixed so adjacent values cannot collide by concatenation.
func fingerprint(pairs []domain.RecoveredPair, throughputHz float64) uint64 {
	digest := xxhash.New()
	for _, pair := range pairs {
		digest.WriteString(strconv.Itoa(len(pair.PlaintextRaw)))
		digest.WriteString(":")
		digest.WriteString(pair.PlaintextRaw)
	}
	digest.WriteString("@")
	digest.WriteString(strconv.FormatFloat(throughputHz, 'g', -1, 64))
	return digest.Sum64()
}

func (s *AnalysisService) SuggestHashrate(ctx context.Context, algorithmID string) (domain.HashrateSuggestion, error) {
	summaries, err := s.repo.ListRunSummaries(ctx, algorithmID)
	if err != nil {
		return domain.HashrateSuggestion{}, fmt.Errorf("loading run summaries: %w", err)
	}
	return algorithm.SuggestHashrate(algorithmID, summaries, s.liveReading(ctx)), nil
}

// SelectMasks runs the budget selector over the displayed result. Unlike
// the engine, it rejects a non-positive throughput and a negative budget.
// Coverage is computed against the same result the masks came from.
func (s *AnalysisService) SelectMasks(ctx context.Context, req domain.MaskSelectionRequest) (domain.DisplayedSelection, error) {
	if req.SortMode == "" {
		req.SortMode = domain.SortByOccurrence
	}
	if !req.SortMode.Valid() {
		return domain.DisplayedSelection{}, domain.ErrInvalidSortMode
	}
	if req.ThroughputHz <= 0 {
		return domain.DisplayedSelection{}, domain.ErrInvalidThroughput
	}
	if req.TimeBudgetSeconds < 0 {
		return domain.DisplayedSelection{}, domain.ErrInvalidBudget
	}

	result, _, generation := s.view.Current()
	if result == nil {
		return domain.DisplayedSelection{}, domain.ErrNoResult
	}
	selection := algorithm.SelectMasks(result.Masks, req)
	return domain.DisplayedSelection{
		MaskSelectionResult: selection,
		Total:               result.Total,
		Coverage:            selection.Coverage(result.Total),
		Generation:          generation,
	}, nil
}

func (s *AnalysisService) RuleFile(ctx context.Context) (string, error) {
	result, _, _ := s.view.Current()
	if result == nil {
		return "", domain.ErrNoResult
	}
	return algorithm.SynthesizeRules(result.Prefixes, result.Suffixes), nil
}

func (s *AnalysisService) ExportWordlist(ctx context.Context, filter domain.CorpusFilter) (string, error) {
	pairs, err := s.repo.ListPairs(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("loading corpus: %w", err)
	}
	return algorithm.WordlistBody(pairs), nil
}

// SaveSnapshot persists the displayed result under name.
func (s *AnalysisService) SaveSnapshot(ctx context.Context, name string) (*domain.Snapshot, error) {
	result, _, _ := s.view.Current()
	if result == nil {
		return nil, domain.ErrNoResult
	}

	snapshot := &domain.Snapshot{
		ID:        random.GenerateUUID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}
	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"snapshotId": snapshot.ID,
		"name":       name,
	}).Info("snapshot saved")
	return snapshot, nil
}

// ViewSnapshot displays a saved snapshot. Live analyses still running are
// superseded and their results will be discarded.
func (s *AnalysisService) ViewSnapshot(ctx context.Context, snapshotID string) (*domain.Snapshot, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	generation := s.view.ShowSnapshot(snapshot)
	s.log.WithFields(logrus.Fields{
		"snapshotId": snapshot.ID,
		"generation": generation,
	}).Info("viewing snapshot")
	return snapshot, nil
}

func (s *AnalysisService) Current() (*domain.AnalysisResult, domain.ViewMode, uint64) {
	return s.view.Current()
}

// Wait blocks until every background analysis has finished.
func (s *AnalysisService) Wait() {
	s.wg.Wait()
}

func (e *jobEntry) snapshot() domain.AnalysisJob {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.job
}

func (e *jobEntry) update(fn func(*domain.AnalysisJob)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.job)
}
