package subsets

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

func TestPatternAlgebra(t *testing.T) {
	if Singleton(0) != 1 || Singleton(2) != 4 {
		t.Errorf("Singleton wrong: %d %d", Singleton(0), Singleton(2))
	}
	if PairOf(1, 2) != 6 {
		t.Errorf("PairOf(1,2) = %d, want 6", PairOf(1, 2))
	}
	if PairOf(2, 1) != PairOf(1, 2) {
		t.Error("PairOf should not depend on argument order")
	}
	if Slots(3) != 8 {
		t.Errorf("Slots(3) = %d, want 8", Slots(3))
	}
	if Full(3) != 7 {
		t.Errorf("Full(3) = %d, want 7", Full(3))
	}

	p := Pattern(0b1011)
	if p.Size() != 3 {
		t.Errorf("Size = %d, want 3", p.Size())
	}
	if !p.Has(3) || p.Has(2) {
		t.Error("Has reports wrong membership")
	}
	if got := p.Members(); !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Errorf("Members = %v", got)
	}
	if p.String() != "0b1011" {
		t.Errorf("String = %q", p.String())
	}
	if len(Pattern(0).Members()) != 0 {
		t.Error("empty pattern should have no members")
	}
}

func TestDefinitionRequested(t *testing.T) {
	d := NewDefinition(3, 5, 1, 3)
	want := []Pattern{1, 3, 5}
	if got := d.Requested(); !reflect.DeepEqual(got, want) {
		t.Errorf("Requested = %v, want %v", got, want)
	}
	if !d.Contains(5) || d.Contains(7) {
		t.Error("Contains reports wrong result")
	}
	if d.GroupSize() != 3 {
		t.Errorf("GroupSize = %d", d.GroupSize())
	}
}

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		n    int
		ok   bool
	}{
		{"valid", NewDefinition(3, 1, 7), 3, true},
		{"empty request", NewDefinition(2), 2, true},
		{"zero pattern", NewDefinition(3, 0), 3, false},
		{"pattern out of range", NewDefinition(2, 4), 2, false},
		{"size mismatch", NewDefinition(2, 1), 3, false},
		{"empty group", NewDefinition(0), 0, false},
		{"too large", NewDefinition(MaxGroupSize + 1), MaxGroupSize + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate(tt.n)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, internalerr.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDefinitionNeeded(t *testing.T) {
	d := NewDefinition(3, 7)
	needed := d.Needed()

	for _, p := range []Pattern{1, 2, 3, 4, 5, 6, 7} {
		if !needed.Test(uint(p)) {
			t.Errorf("pattern %s should be needed", p)
		}
	}
	if needed.Test(0) {
		t.Error("empty pattern should never be needed")
	}

	d = NewDefinition(3, 4)
	needed = d.Needed()
	if needed.Count() != 1 || !needed.Test(4) {
		t.Errorf("singleton request should need only itself, got %d patterns", needed.Count())
	}
}

func TestFullDefinition(t *testing.T) {
	d := FullDefinition(3)
	if got := len(d.Requested()); got != 7 {
		t.Errorf("FullDefinition(3) requested %d patterns, want 7", got)
	}
	if err := d.Validate(3); err != nil {
		t.Errorf("FullDefinition should validate: %v", err)
	}
}

func TestProbabilitiesAt(t *testing.T) {
	sp := Probabilities{Values: []float64{0, 0.5}}
	if sp.At(1) != 0.5 {
		t.Errorf("At(1) = %f", sp.At(1))
	}
	if sp.At(9) != 0 {
		t.Error("out of range pattern should read as 0")
	}
}
