// Package stats supplies boolean occurrence and co-occurrence counts.
package stats

import "context"

// Provider exposes corpus statistics to the estimator.
//
// Counts are numbers of corpus units (documents or windows) containing the
// word, or containing both words. CooccurrenceCount is symmetric and the
// self pair yields the word's occurrence count. Implementations must be safe
// for concurrent reads.
type Provider interface {
	OccurrenceCount(ctx context.Context, word string) (int64, error)
	CooccurrenceCount(ctx context.Context, a, b string) (int64, error)
	TotalWordUnits(ctx context.Context) (float64, error)
	TotalCooccurrenceUnits(ctx context.Context) (float64, error)
}
