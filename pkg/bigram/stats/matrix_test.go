package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

func TestMatrixLookups(t *testing.T) {
	m, err := NewMatrix([]string{"0", "1", "2"}, [][]int64{
		{5, 2, 3},
		{2, 2, 1},
		{3, 1, 6},
	})
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	ctx := context.Background()

	if n, _ := m.OccurrenceCount(ctx, "2"); n != 6 {
		t.Errorf("OccurrenceCount(2) = %d, want 6", n)
	}
	if n, _ := m.CooccurrenceCount(ctx, "2", "0"); n != 3 {
		t.Errorf("CooccurrenceCount(2,0) = %d, want 3", n)
	}
	if n, _ := m.CooccurrenceCount(ctx, "0", "unknown"); n != 0 {
		t.Errorf("unknown word should count 0, got %d", n)
	}
	if total, _ := m.TotalWordUnits(ctx); total != 13 {
		t.Errorf("TotalWordUnits = %v, want 13", total)
	}
	if total, _ := m.TotalCooccurrenceUnits(ctx); total != 6 {
		t.Errorf("TotalCooccurrenceUnits = %v, want 6", total)
	}

	m.WithTotals(100, 50)
	if total, _ := m.TotalWordUnits(ctx); total != 100 {
		t.Errorf("overridden TotalWordUnits = %v", total)
	}
}

func TestMatrixRejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		words  []string
		counts [][]int64
	}{
		{"empty", nil, nil},
		{"row count", []string{"a", "b"}, [][]int64{{1, 0}}},
		{"column count", []string{"a", "b"}, [][]int64{{1, 0}, {0}}},
		{"asymmetric", []string{"a", "b"}, [][]int64{{1, 1}, {0, 1}}},
		{"negative", []string{"a"}, [][]int64{{-1}}},
		{"duplicate word", []string{"a", "a"}, [][]int64{{1, 0}, {0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(tt.words, tt.counts)
			if !errors.Is(err, internalerr.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
