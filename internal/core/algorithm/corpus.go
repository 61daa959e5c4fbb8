package algorithm

import (
	"sort"
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"

	"crackInsightBackend/internal/core/domain"
)

// Limits caps the ranked lists of an AnalysisResult.
type Limits struct {
	Masks     int
	Passwords int
	BaseWords int
	Affixes   int
}

func DefaultLimits() Limits {
	return Limits{
		Masks:     domain.MaxMaskStats,
		Passwords: domain.MaxPasswords,
		BaseWords: domain.MaxBaseWords,
		Affixes:   domain.MaxAffixes,
	}
}

// Accumulator aggregates corpus statistics in a single pass. Frequency
// maps grow unbounded; truncation only happens in Result.
type Accumulator struct {
	masks      *counter
	passwords  *counter
	baseWords  *counter
	prefixes   *counter
	suffixes   *counter
	lengths    map[int]uint64
	charsets   map[domain.CharsetClass]uint64
	entropy    map[entropyKey]uint64
	total      uint64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		masks:     newCounter(),
		passwords: newCounter(),
		baseWords: newCounter(),
		prefixes:  newCounter(),
		suffixes:  newCounter(),
		lengths:   make(map[int]uint64),
		charsets:  make(map[domain.CharsetClass]uint64),
		entropy:   make(map[entropyKey]uint64),
	}
}

// Add decodes and records one plaintext. Empty plaintexts are skipped and
// Add reports false.
func (a *Accumulator) Add(raw string) bool {
	plaintext := DecodePlaintext(raw)
	if plaintext == "" {
		return false
	}

	a.total++
	a.masks.add(BuildMask(plaintext), 1)
	a.lengths[utf8.RuneCountInString(plaintext)]++
	a.charsets[CharsetBucket(plaintext)]++
	a.passwords.add(plaintext, 1)

	seg := Segment(plaintext)
	if seg.Prefix != "" {
		a.prefixes.add(seg.Prefix, 1)
	}
	if seg.Suffix != "" {
		a.suffixes.add(seg.Suffix, 1)
	}
	if word, ok := seg.BaseWord(plaintext); ok {
		a.baseWords.add(word, 1)
	}

	a.entropy[entropyShape(plaintext)]++
	return true
}

func (a *Accumulator) AddPair(pair domain.RecoveredPair) bool {
	return a.Add(pair.PlaintextRaw)
}

// Merge folds other into a. Merging shards in corpus order yields exactly
// the state of a sequential pass.
func (a *Accumulator) Merge(other *Accumulator) {
	a.masks.merge(other.masks)
	a.passwords.merge(other.passwords)
	a.baseWords.merge(other.baseWords)
	a.prefixes.merge(other.prefixes)
	a.suffixes.merge(other.suffixes)
	for length, n := range other.lengths {
		a.lengths[length] += n
	}
	for class, n := range other.charsets {
		a.charsets[class] += n
	}
	for shape, n := range other.entropy {
		a.entropy[shape] += n
	}
	a.total += other.total
}

func (a *Accumulator) Total() uint64 {
	return a.total
}

// Result finalizes the pass with the default caps.
func (a *Accumulator) Result(throughputHz float64) *domain.AnalysisResult {
	return a.ResultWithLimits(throughputHz, DefaultLimits())
}

// ResultWithLimits finalizes the pass. A non-positive throughput falls back
// to the 1 GH/s placeholder.
func (a *Accumulator) ResultWithLimits(throughputHz float64, limits Limits) *domain.AnalysisResult {
	if throughputHz <= 0 {
		throughputHz = domain.DefaultThroughputHz
	}

	ranked := a.masks.top(limits.Masks)
	masks := make([]domain.MaskStat, 0, len(ranked))
	for _, entry := range ranked {
		complexity := Complexity(entry.Value)
		masks = append(masks, domain.MaskStat{
			Mask:        entry.Value,
			Count:       entry.Count,
			Complexity:  complexity,
			TimeToCrack: secondsAt(complexity, throughputHz),
		})
	}

	lengths := make(map[int]uint64, len(a.lengths))
	for k, v := range a.lengths {
		lengths[k] = v
	}
	charsets := make(map[domain.CharsetClass]uint64, len(a.charsets))
	for k, v := range a.charsets {
		charsets[k] = v
	}

	result := &domain.AnalysisResult{
		Masks:         masks,
		DistinctMasks: a.masks.len(),
		Lengths:       lengths,
		Charsets:      charsets,
		Passwords:     a.passwords.top(limits.Passwords),
		BaseWords:     a.baseWords.top(limits.BaseWords),
		Prefixes:      a.prefixes.top(limits.Affixes),
		Suffixes:      a.suffixes.top(limits.Affixes),
		Total:         a.total,
		ThroughputHz:  throughputHz,
	}
	if a.total > 0 {
		result.AvgEntropy = meanEntropy(a.entropy)
		result.LengthMean, result.LengthStdDev = lengthStats(a.lengths, a.total)
	}
	return result
}

func lengthStats(lengths map[int]uint64, total uint64) (float64, float64) {
	keys := make([]int, 0, len(lengths))
	for k := range lengths {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	x := make([]float64, len(keys))
	weights := make([]float64, len(keys))
	for i, k := range keys {
		x[i] = float64(k)
		weights[i] = float64(lengths[k])
	}
	if total < 2 {
		return stat.Mean(x, weights), 0
	}
	return stat.MeanStdDev(x, weights)
}

// AnalyzeCorpus runs a full single-threaded pass over pairs.
func AnalyzeCorpus(pairs []domain.RecoveredPair, throughputHz float64) *domain.AnalysisResult {
	acc := NewAccumulator()
	for _, pair := range pairs {
		acc.AddPair(pair)
	}
	return acc.Result(throughputHz)
}
