package prob

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/stats"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

// batch memoises provider lookups for the duration of one Estimate call.
type batch struct {
	ctx          context.Context
	provider     stats.Provider
	logger       *slog.Logger
	minFrequency int64
	totalWords   float64
	totalCooc    float64
	occurrences  map[string]int64
	pairs        map[stats.TokenPair]int64
	warned       bool
}

func (e *Estimator) newBatch(ctx context.Context, minFrequency int64) (*batch, error) {
	totalWords, err := e.provider.TotalWordUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("total word units: %w", err)
	}
	if err := checkTotal("total word units", totalWords); err != nil {
		return nil, err
	}
	totalCooc, err := e.provider.TotalCooccurrenceUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("total co-occurrence units: %w", err)
	}
	if err := checkTotal("total co-occurrence units", totalCooc); err != nil {
		return nil, err
	}

	return &batch{
		ctx:          ctx,
		provider:     e.provider,
		logger:       e.logger,
		minFrequency: minFrequency,
		totalWords:   totalWords,
		totalCooc:    totalCooc,
		occurrences:  make(map[string]int64),
		pairs:        make(map[stats.TokenPair]int64),
	}, nil
}

// checkTotal rejects totals that cannot normalize a count into [0,1].
func checkTotal(name string, total float64) error {
	switch {
	case math.IsNaN(total) || math.IsInf(total, 0):
		return fmt.Errorf("%s %v is not finite: %w", name, total, internalerr.ErrProviderInconsistency)
	case total < 0:
		return fmt.Errorf("%s %v is negative: %w", name, total, internalerr.ErrProviderInconsistency)
	}
	return nil
}

// fill builds the probability slice for one validated group.
func (b *batch) fill(words []string) ([]float64, error) {
	values := make([]float64, subsets.Slots(len(words)))

	for i, w := range words {
		count, err := b.occurrence(w)
		if err != nil {
			return nil, err
		}
		values[subsets.Singleton(i)] = b.ratio(b.filter(count), b.totalWords, "total_word_units")
	}

	for i := 0; i < len(words); i++ {
		for j := i + 1; j < len(words); j++ {
			count, err := b.cooccurrence(words[i], words[j])
			if err != nil {
				return nil, err
			}
			values[subsets.PairOf(i, j)] = b.ratio(b.filter(count), b.totalCooc, "total_cooccurrence_units")
		}
	}

	return values, nil
}

func (b *batch) occurrence(word string) (int64, error) {
	if n, ok := b.occurrences[word]; ok {
		return n, nil
	}
	n, err := b.provider.OccurrenceCount(b.ctx, word)
	if err != nil {
		return 0, fmt.Errorf("occurrence count of %q: %w", word, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("occurrence count of %q is %d: %w", word, n, internalerr.ErrProviderInconsistency)
	}
	b.occurrences[word] = n
	return n, nil
}

func (b *batch) cooccurrence(a, c string) (int64, error) {
	key := stats.NewPair(a, c)
	if n, ok := b.pairs[key]; ok {
		return n, nil
	}
	n, err := b.provider.CooccurrenceCount(b.ctx, a, c)
	if err != nil {
		return 0, fmt.Errorf("co-occurrence count of %q and %q: %w", a, c, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("co-occurrence count of %q and %q is %d: %w", a, c, n, internalerr.ErrProviderInconsistency)
	}
	b.pairs[key] = n
	return n, nil
}

// filter suppresses counts below the minimum frequency.
func (b *batch) filter(count int64) int64 {
	if count < b.minFrequency {
		return 0
	}
	return count
}

// ratio divides count by total. A zero total yields 0 and is reported once
// per batch as a data-integrity warning when the count is nonzero.
func (b *batch) ratio(count int64, total float64, totalName string) float64 {
	if count == 0 {
		return 0
	}
	if total == 0 {
		if !b.warned {
			b.warned = true
			b.logger.Warn("nonzero count with zero normalization total",
				"total", totalName,
				"count", count)
		}
		return 0
	}
	return float64(count) / total
}
