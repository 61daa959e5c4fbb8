package algorithm

import (
	"math"
	"math/big"
	"sort"
	"strings"

	"crackInsightBackend/internal/core/domain"
)

// SelectMasks picks masks that fit in the time budget. Candidates that
// would overrun the budget are skipped and the scan continues, so cheaper
// masks further down the ordering can still be taken.
func SelectMasks(stats []domain.MaskStat, req domain.MaskSelectionRequest) domain.MaskSelectionResult {
	result := domain.MaskSelectionResult{SelectedMasks: []string{}}
	if req.TimeBudgetSeconds <= 0 || req.ThroughputHz <= 0 || len(stats) == 0 {
		return result
	}

	for _, candidate := range orderCandidates(stats, req.SortMode) {
		if candidate.TokenLength() < req.MinMaskLength {
			continue
		}
		seconds := secondsAt(complexityOf(candidate), req.ThroughputHz)
		if result.AccumulatedTimeSeconds+seconds > req.TimeBudgetSeconds {
			continue
		}
		result.SelectedMasks = append(result.SelectedMasks, candidate.Mask)
		result.AccumulatedTimeSeconds += seconds
		result.CoveredCount += candidate.Count
	}
	return result
}

func orderCandidates(stats []domain.MaskStat, mode domain.SortMode) []domain.MaskStat {
	ordered := make([]domain.MaskStat, len(stats))
	copy(ordered, stats)

	switch mode {
	case domain.SortByOptIndex:
		type ranked struct {
			stat  domain.MaskStat
			index float64
		}
		rs := make([]ranked, len(ordered))
		for i, s := range ordered {
			rs[i] = ranked{stat: s, index: optIndex(s)}
		}
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].index < rs[j].index
		})
		for i := range rs {
			ordered[i] = rs[i].stat
		}
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Count > ordered[j].Count
		})
	}
	return ordered
}

// optIndex is keyspace per observed hit; lower is cheaper.
func optIndex(s domain.MaskStat) float64 {
	if s.Count == 0 {
		return math.Inf(1)
	}
	ratio, _ := new(big.Float).Quo(
		new(big.Float).SetInt(complexityOf(s)),
		new(big.Float).SetUint64(s.Count),
	).Float64()
	return ratio
}

func complexityOf(s domain.MaskStat) *big.Int {
	if s.Complexity != nil {
		return s.Complexity
	}
	return Complexity(s.Mask)
}

// MaskFileBody renders masks in .hcmask form, one per line.
func MaskFileBody(masks []string) string {
	if len(masks) == 0 {
		return ""
	}
	return strings.Join(masks, "\n") + "\n"
}
