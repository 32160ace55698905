package util

import "sort"

// Counter counts string keys while remembering first-seen order. Ranking ties
// are broken by that order, so counts collected in a fixed pass order rank
// identically on every run.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments key by one.
func (c *Counter) Add(key string) {
	c.AddN(key, 1)
}

// AddN increments key by n.
func (c *Counter) AddN(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// AddAll increments every key in keys by one, in order.
func (c *Counter) AddAll(keys []string) {
	for _, k := range keys {
		c.Add(k)
	}
}

// Count returns the count for key, zero if absent.
func (c *Counter) Count(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.order)
}

// Keys returns the keys in first-seen order. The slice is shared with the
// Counter and must not be modified.
func (c *Counter) Keys() []string {
	return c.order
}

// Pair is a counted key.
type Pair struct {
	Key   string
	Count int
}

// MostCommon returns the n highest-count pairs, ordered by count descending
// with ties in first-seen order. A negative n returns every pair.
func (c *Counter) MostCommon(n int) []Pair {
	pairs := make([]Pair, 0, len(c.order))
	for _, k := range c.order {
		pairs = append(pairs, Pair{Key: k, Count: c.counts[k]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Count > pairs[j].Count
	})
	if n >= 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
