package prob

import (
	"fmt"
	"math"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

// DefaultEpsilon keeps log(0) out of association scores.
const DefaultEpsilon = 1e-12

// Calculator derives pairwise association scores from estimated
// probabilities.
type Calculator struct {
	epsilon float64 // smoothing constant
}

// NewCalculator creates a calculator with the given epsilon
func NewCalculator(epsilon float64) *Calculator {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Calculator{epsilon: epsilon}
}

// PMI calculates the pointwise mutual information between words i and j
//
// PMI(i,j) = log((P(i,j) + ε) / (P(i) P(j)))
//
// It is 0 when either marginal is 0.
func (c *Calculator) PMI(p subsets.Probabilities, i, j int) (float64, error) {
	pi, pj, pij, err := c.lookup(p, i, j)
	if err != nil {
		return 0, err
	}
	if pi == 0 || pj == 0 {
		return 0, nil
	}
	return math.Log((pij + c.epsilon) / (pi * pj)), nil
}

// NPMI calculates normalized PMI. It stays within [-1, 1] only when singleton
// and pair probabilities share a normalization.
// NPMI(i,j) = PMI(i,j) / -log(P(i,j) + ε)
func (c *Calculator) NPMI(p subsets.Probabilities, i, j int) (float64, error) {
	pmi, err := c.PMI(p, i, j)
	if err != nil {
		return 0, err
	}
	logJoint := math.Log(p.At(subsets.PairOf(i, j)) + c.epsilon)
	if logJoint == 0 {
		return 0, nil
	}
	return pmi / -logJoint, nil
}

// MeanNPMI averages NPMI over every word pair of the group.
func (c *Calculator) MeanNPMI(p subsets.Probabilities) (float64, error) {
	n := len(p.Words)
	if n < 2 {
		return 0, fmt.Errorf("group of %d words has no pairs: %w", n, internalerr.ErrInvalidInput)
	}
	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v, err := c.NPMI(p, i, j)
			if err != nil {
				return 0, err
			}
			sum += v
		}
	}
	return sum / float64(n*(n-1)/2), nil
}

func (c *Calculator) lookup(p subsets.Probabilities, i, j int) (pi, pj, pij float64, err error) {
	n := len(p.Words)
	if i == j || i < 0 || j < 0 || i >= n || j >= n {
		return 0, 0, 0, fmt.Errorf("word pair (%d,%d) in group of %d: %w", i, j, n, internalerr.ErrInvalidInput)
	}
	if len(p.Values) != subsets.Slots(n) {
		return 0, 0, 0, fmt.Errorf("%d values for %d words: %w", len(p.Values), n, internalerr.ErrInvalidInput)
	}
	return p.At(subsets.Singleton(i)), p.At(subsets.Singleton(j)), p.At(subsets.PairOf(i, j)), nil
}
