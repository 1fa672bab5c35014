package analyzer

import (
	"sort"

	"instascan/pkg/models"
)

// Counter accumulates token occurrence counts while remembering the
// order in which tokens were first seen. Counts only ever grow during
// an aggregation pass.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty frequency counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one occurrence of the token
func (c *Counter) Add(token string) {
	if _, seen := c.counts[token]; !seen {
		c.order = append(c.order, token)
	}
	c.counts[token]++
}

// Len returns the number of distinct tokens
func (c *Counter) Len() int {
	return len(c.counts)
}

// Top returns up to n entries sorted descending by count. Ties keep
// first-seen order, which keeps the exported tables deterministic.
func (c *Counter) Top(n int) []models.TokenCount {
	entries := make([]models.TokenCount, 0, len(c.order))
	for _, token := range c.order {
		entries = append(entries, models.TokenCount{Token: token, Count: c.counts[token]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
