package algorithm

import (
	"sort"

	"crackInsightBackend/internal/core/domain"
)

// counter is a frequency map that remembers first-seen order, so that
// ties in top() resolve the same way on every run.
type counter struct {
	counts map[string]uint64
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]uint64)}
}

func (c *counter) add(key string, n uint64) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *counter) merge(other *counter) {
	for _, key := range other.order {
		c.add(key, other.counts[key])
	}
}

func (c *counter) len() int {
	return len(c.order)
}

// top returns entries by descending count, at most n of them (all when n <= 0).
func (c *counter) top(n int) []domain.CountEntry {
	entries := make([]domain.CountEntry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, domain.CountEntry{Value: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
