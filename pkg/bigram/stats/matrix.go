package stats

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

// Matrix is a read-only provider over a fixed vocabulary. The diagonal
// holds self counts and off-diagonal cells hold pair counts.
type Matrix struct {
	index      map[string]int
	counts     *mat.SymDense
	totalWords float64
	totalCooc  float64
}

// NewMatrix builds a provider from a square symmetric count table whose
// rows follow words. Totals default to the diagonal sum and the sum of the
// upper triangle.
func NewMatrix(words []string, counts [][]int64) (*Matrix, error) {
	n := len(words)
	if n == 0 {
		return nil, fmt.Errorf("matrix needs at least one word: %w", internalerr.ErrInvalidInput)
	}
	if len(counts) != n {
		return nil, fmt.Errorf("matrix has %d rows for %d words: %w", len(counts), n, internalerr.ErrInvalidInput)
	}

	index := make(map[string]int, n)
	for i, w := range words {
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("duplicate word %q: %w", w, internalerr.ErrInvalidInput)
		}
		index[w] = i
	}

	for i, row := range counts {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), n, internalerr.ErrInvalidInput)
		}
	}

	data := make([]float64, n*n)
	diag := make([]float64, n)
	upper := make([]float64, 0, n*(n-1)/2)
	for i, row := range counts {
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("negative count at (%d,%d): %w", i, j, internalerr.ErrInvalidInput)
			}
			if counts[j][i] != v {
				return nil, fmt.Errorf("count table not symmetric at (%d,%d): %w", i, j, internalerr.ErrInvalidInput)
			}
			data[i*n+j] = float64(v)
			switch {
			case i == j:
				diag[i] = float64(v)
			case j > i:
				upper = append(upper, float64(v))
			}
		}
	}

	return &Matrix{
		index:      index,
		counts:     mat.NewSymDense(n, data),
		totalWords: floats.Sum(diag),
		totalCooc:  floats.Sum(upper),
	}, nil
}

// WithTotals overrides the normalization totals.
func (m *Matrix) WithTotals(wordUnits, cooccurrenceUnits float64) *Matrix {
	m.totalWords = wordUnits
	m.totalCooc = cooccurrenceUnits
	return m
}

// OccurrenceCount implements Provider. Unknown words count zero.
func (m *Matrix) OccurrenceCount(ctx context.Context, word string) (int64, error) {
	return m.CooccurrenceCount(ctx, word, word)
}

// CooccurrenceCount implements Provider.
func (m *Matrix) CooccurrenceCount(ctx context.Context, a, b string) (int64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, nil
	}
	j, ok := m.index[b]
	if !ok {
		return 0, nil
	}
	return int64(m.counts.At(i, j)), nil
}

// TotalWordUnits implements Provider.
func (m *Matrix) TotalWordUnits(ctx context.Context) (float64, error) {
	return m.totalWords, nil
}

// TotalCooccurrenceUnits implements Provider.
func (m *Matrix) TotalCooccurrenceUnits(ctx context.Context) (float64, error) {
	return m.totalCooc, nil
}
