// Package prob estimates subset probabilities for word groups from boolean
// bigram statistics.
//
// For a group of n words the estimate is a slice of length 1<<n indexed by
// subsets.Pattern:
//
//	P({w_i})      = count(w_i) / totalWordUnits
//	P({w_i, w_j}) = count(w_i, w_j) / totalCooccurrenceUnits
//
// Counts below the minimum frequency read as zero. The empty pattern and any
// pattern with three or more members stay at zero since bigram statistics
// carry no signal for them.
package prob

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/stats"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

// Estimator computes subset probabilities. It holds no state between calls
// and is safe for concurrent use when its provider is.
type Estimator struct {
	provider stats.Provider
	logger   *slog.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithLogger sets the logger used for data-integrity warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Estimator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an estimator reading counts from provider.
func New(provider stats.Provider, opts ...Option) *Estimator {
	e := &Estimator{provider: provider, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate returns one probability slice per group, in input order.
//
// defs may be nil, in which case every pattern counts as requested.
// Otherwise defs[g] must be built for len(groups[g]) words. Every singleton
// and pair slot is filled regardless of the request since downstream
// measures may read any of them.
func (e *Estimator) Estimate(ctx context.Context, groups [][]string, defs []subsets.Definition, minFrequency int64) ([]subsets.Probabilities, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no word groups: %w", internalerr.ErrInvalidInput)
	}
	if minFrequency < 0 {
		return nil, fmt.Errorf("minimum frequency %d is negative: %w", minFrequency, internalerr.ErrInvalidInput)
	}
	if defs != nil && len(defs) != len(groups) {
		return nil, fmt.Errorf("%d definitions for %d groups: %w", len(defs), len(groups), internalerr.ErrInvalidInput)
	}

	resolved := make([]subsets.Definition, len(groups))
	for g, words := range groups {
		if err := validateGroup(words); err != nil {
			return nil, fmt.Errorf("group %d: %w", g, err)
		}
		def := subsets.FullDefinition(len(words))
		if defs != nil {
			def = defs[g]
		}
		if err := def.Validate(len(words)); err != nil {
			return nil, fmt.Errorf("group %d: %w", g, err)
		}
		resolved[g] = def
	}

	b, err := e.newBatch(ctx, minFrequency)
	if err != nil {
		return nil, err
	}

	out := make([]subsets.Probabilities, len(groups))
	for g, words := range groups {
		values, err := b.fill(words)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", g, err)
		}
		out[g] = subsets.Probabilities{
			Words:      append([]string(nil), words...),
			Definition: resolved[g],
			Values:     values,
		}
	}

	e.logger.Debug("estimated subset probabilities",
		"groups", len(groups),
		"min_frequency", minFrequency,
		"occurrence_lookups", len(b.occurrences),
		"pair_lookups", len(b.pairs))
	return out, nil
}

func validateGroup(words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("empty word group: %w", internalerr.ErrInvalidInput)
	}
	if len(words) > subsets.MaxGroupSize {
		return fmt.Errorf("group of %d words exceeds %d: %w", len(words), subsets.MaxGroupSize, internalerr.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			return fmt.Errorf("duplicate word %q: %w", w, internalerr.ErrInvalidInput)
		}
		seen[w] = struct{}{}
	}
	return nil
}
