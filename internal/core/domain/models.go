package domain

import (
	"math/big"
	"time"
)

type RecoveredPair struct {
	Hash         string    `json:"hash"`
	PlaintextRaw string    `json:"plaintextRaw"`
	AlgorithmID  string    `json:"algorithmId"`
	Timestamp    time.Time `json:"timestamp"`
}

// MaskStat is one distinct mask observed in a corpus. Complexity and
// TimeToCrack are derived from Mask and the throughput of the pass.
type MaskStat struct {
	Mask        string   `json:"mask"`
	Count       uint64   `json:"count"`
	Complexity  *big.Int `json:"complexity"`
	TimeToCrack float64  `json:"timeToCrack"`
}

// TokenLength is the number of 2-character tokens in the mask.
func (m MaskStat) TokenLength() int {
	return len(m.Mask) / 2
}

type CountEntry struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}

type AnalysisResult struct {
	Masks         []MaskStat              `json:"masks"`
	DistinctMasks int                     `json:"distinctMasks"`
	Lengths       map[int]uint64          `json:"lengths"`
	Charsets      map[CharsetClass]uint64 `json:"charsets"`
	Passwords     []CountEntry            `json:"passwords"`
	BaseWords     []CountEntry            `json:"baseWords"`
	Prefixes      []CountEntry            `json:"prefixes"`
	Suffixes      []CountEntry            `json:"suffixes"`
	AvgEntropy    float64                 `json:"avgEntropy"`
	LengthMean    float64                 `json:"lengthMean"`
	LengthStdDev  float64                 `json:"lengthStdDev"`
	Total         uint64                  `json:"total"`
	ThroughputHz  float64                 `json:"throughputHz"`
}

type HistoricalRunSummary struct {
	AlgorithmID string  `json:"algorithmId"`
	AttackMode  int     `json:"attackMode"`
	AvgHashrate float64 `json:"avgHashrate"`
}

// LiveReading is the algorithm and hashrate (H/s) of a running session.
type LiveReading struct {
	AlgorithmID string  `json:"algorithmId"`
	HashrateHz  float64 `json:"hashrateHz"`
}

// HashrateSuggestion.Value is in GH/s.
type HashrateSuggestion struct {
	Value    float64        `json:"value"`
	Detected bool           `json:"detected"`
	Source   HashrateSource `json:"source"`
}

// ThroughputHz converts the suggestion to candidates per second.
func (h HashrateSuggestion) ThroughputHz() float64 {
	return h.Value * HashratePerGigahash
}

type MaskSelectionRequest struct {
	TimeBudgetSeconds float64  `json:"timeBudgetSeconds"`
	ThroughputHz      float64  `json:"throughputHz"`
	MinMaskLength     int      `json:"minMaskLength"`
	SortMode          SortMode `json:"sortMode"`
}

type MaskSelectionResult struct {
	SelectedMasks          []string `json:"selectedMasks"`
	AccumulatedTimeSeconds float64  `json:"accumulatedTimeSeconds"`
	CoveredCount           uint64   `json:"coveredCount"`
}

// Coverage returns the covered fraction of total, 0 when total is 0.
func (r MaskSelectionResult) Coverage(total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(r.CoveredCount) / float64(total)
}

// DisplayedSelection is a mask selection together with the size of the
// displayed result it was taken from.
type DisplayedSelection struct {
	MaskSelectionResult
	Total      uint64  `json:"total"`
	Coverage   float64 `json:"coverage"`
	Generation uint64  `json:"generation"`
}

type CorpusFilter struct {
	AlgorithmID string    `json:"algorithmId,omitempty"`
	Since       time.Time `json:"since,omitempty"`
	Until       time.Time `json:"until,omitempty"`
	Limit       int       `json:"limit,omitempty"`
}

type AnalysisRequest struct {
	Filter       CorpusFilter `json:"filter"`
	ThroughputHz float64      `json:"throughputHz"`
}

type AnalysisJob struct {
	ID              string          `json:"id"`
	Generation      uint64          `json:"generation"`
	Status          JobStatus       `json:"status"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime,omitempty"`
	Pairs           int             `json:"pairs"`
	Request         AnalysisRequest `json:"request"`
	Result          *AnalysisResult `json:"result,omitempty"`
	ResourceMetrics ResourceMetrics `json:"resourceMetrics"`
	ErrorMessage    string          `json:"errorMessage,omitempty"`
}

// TaggedResult carries the generation of the request that produced it.
type TaggedResult struct {
	Generation uint64          `json:"generation"`
	JobID      string          `json:"jobId"`
	Result     *AnalysisResult `json:"result"`
}

type Snapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Result    *AnalysisResult `json:"result"`
}

type ResourceMetrics struct {
	CPUUsage          float64   `json:"cpuUsage"`
	MemoryUsageMB     int64     `json:"memoryUsageMb"`
	SystemMemoryUsage float64   `json:"systemMemoryUsage"`
	PairsPerSec       int64     `json:"pairsPerSec"`
	TotalPairs        int64     `json:"totalPairs"`
	ActiveThreads     int       `json:"activeThreads"`
	LastUpdated       time.Time `json:"lastUpdated"`
}
