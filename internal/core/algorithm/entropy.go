package algorithm

import (
	"math"
	"sort"
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"

	"crackInsightBackend/internal/core/domain"
)

// Entropy is the pool-size heuristic log2(pool) * length, where the pool
// adds a fixed size for every character class present. It overestimates
// for repeated characters and is only a relative corpus signal.
func Entropy(password string) float64 {
	return entropyShape(password).bits()
}

// entropyKey is everything Entropy depends on. Counting keys instead of
// summing floats keeps the corpus mean independent of pass order.
type entropyKey struct {
	pool   int
	length int
}

func entropyShape(password string) entropyKey {
	f := scanCharset(password)

	pool := 0
	if f.lower {
		pool += domain.EntropyPoolLower
	}
	if f.upper {
		pool += domain.EntropyPoolUpper
	}
	if f.digit {
		pool += domain.EntropyPoolDigit
	}
	if f.special {
		pool += domain.EntropyPoolOther
	}
	return entropyKey{pool: pool, length: utf8.RuneCountInString(password)}
}

func (k entropyKey) bits() float64 {
	if k.pool == 0 {
		return 0
	}
	return math.Log2(float64(k.pool)) * float64(k.length)
}

// meanEntropy is the count-weighted mean over an entropy histogram, summed
// in key order.
func meanEntropy(shapes map[entropyKey]uint64) float64 {
	if len(shapes) == 0 {
		return 0
	}
	keys := make([]entropyKey, 0, len(shapes))
	for k := range shapes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pool != keys[j].pool {
			return keys[i].pool < keys[j].pool
		}
		return keys[i].length < keys[j].length
	})

	bits := make([]float64, len(keys))
	weights := make([]float64, len(keys))
	for i, k := range keys {
		bits[i] = k.bits()
		weights[i] = float64(shapes[k])
	}
	return stat.Mean(bits, weights)
}
