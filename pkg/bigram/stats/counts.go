package stats

import (
	"context"
	"sort"
	"sync"
)

// Counter maintains boolean occurrence and co-occurrence counts in memory.
type Counter struct {
	mu    sync.RWMutex
	units int64               // number of corpus units added
	nx    map[string]int64    // units containing each token
	nxy   map[TokenPair]int64 // units containing both tokens of a pair
	sumX  int64               // running sum of nx
	sumXY int64               // running sum of nxy
}

// TokenPair represents an ordered pair of tokens (T1 < T2)
type TokenPair struct {
	T1, T2 string
}

// NewPair returns the canonical pair for two distinct tokens.
func NewPair(a, b string) TokenPair {
	if a > b {
		a, b = b, a
	}
	return TokenPair{T1: a, T2: b}
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		nx:  make(map[string]int64),
		nxy: make(map[TokenPair]int64),
	}
}

// AddUnit counts one corpus unit. Repeated tokens count once.
func (c *Counter) AddUnit(tokens []string) {
	uniq := UniqueSorted(tokens)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.units++
	for _, t := range uniq {
		c.nx[t]++
		c.sumX++
	}
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			c.nxy[TokenPair{T1: uniq[i], T2: uniq[j]}]++
			c.sumXY++
		}
	}
}

// RemoveUnit reverses a previous AddUnit with the same tokens.
// Counts never go below zero.
func (c *Counter) RemoveUnit(tokens []string) {
	uniq := UniqueSorted(tokens)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.units > 0 {
		c.units--
	}
	for _, t := range uniq {
		if c.nx[t] == 0 {
			continue
		}
		c.sumX--
		if c.nx[t] == 1 {
			delete(c.nx, t)
		} else {
			c.nx[t]--
		}
	}
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			pair := TokenPair{T1: uniq[i], T2: uniq[j]}
			if c.nxy[pair] == 0 {
				continue
			}
			c.sumXY--
			if c.nxy[pair] == 1 {
				delete(c.nxy, pair)
			} else {
				c.nxy[pair]--
			}
		}
	}
}

// GetPairCount returns the co-occurrence count for a token pair.
func (c *Counter) GetPairCount(t1, t2 string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t1 == t2 {
		return c.nx[t1]
	}
	return c.nxy[NewPair(t1, t2)]
}

// GetTokenCount returns the number of units containing a token.
func (c *Counter) GetTokenCount(t string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nx[t]
}

// Units returns the number of units counted.
func (c *Counter) Units() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.units
}

// UniqueTokens returns the number of unique tokens
func (c *Counter) UniqueTokens() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nx)
}

// UniquePairs returns the number of unique token pairs
func (c *Counter) UniquePairs() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nxy)
}

// Neighbors returns every token co-occurring with token, with its count.
func (c *Counter) Neighbors(token string) map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int64)
	for pair, n := range c.nxy {
		switch token {
		case pair.T1:
			out[pair.T2] = n
		case pair.T2:
			out[pair.T1] = n
		}
	}
	return out
}

// OccurrenceCount implements Provider.
func (c *Counter) OccurrenceCount(ctx context.Context, word string) (int64, error) {
	return c.GetTokenCount(word), nil
}

// CooccurrenceCount implements Provider.
func (c *Counter) CooccurrenceCount(ctx context.Context, a, b string) (int64, error) {
	return c.GetPairCount(a, b), nil
}

// TotalWordUnits implements Provider as the sum of all occurrence counts.
func (c *Counter) TotalWordUnits(ctx context.Context) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float64(c.sumX), nil
}

// TotalCooccurrenceUnits implements Provider as the sum of all pair counts.
func (c *Counter) TotalCooccurrenceUnits(ctx context.Context) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return float64(c.sumXY), nil
}

// UniqueSorted returns the distinct non-empty tokens of a unit in ascending
// order. Boolean counting works on this form.
func UniqueSorted(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
