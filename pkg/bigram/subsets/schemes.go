package subsets

import (
	"fmt"
	"sort"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

// Scheme builds the definition a coherence segmentation needs for a group of n words.
type Scheme func(n int) Definition

// OneOne pairs every word with every other single word.
func OneOne(n int) Definition {
	d := NewDefinition(n)
	for i := 0; i < n; i++ {
		d.requested.Set(uint(Singleton(i)))
		for j := i + 1; j < n; j++ {
			d.requested.Set(uint(PairOf(i, j)))
		}
	}
	return d
}

// OnePreceding pairs every word with each single word before it.
func OnePreceding(n int) Definition {
	d := NewDefinition(n)
	for i := 1; i < n; i++ {
		d.requested.Set(uint(Singleton(i)))
		for j := 0; j < i; j++ {
			d.requested.Set(uint(Singleton(j)))
			d.requested.Set(uint(PairOf(i, j)))
		}
	}
	if n == 1 {
		d.requested.Set(uint(Singleton(0)))
	}
	return d
}

// OneAll pairs every word with the set of all other words.
func OneAll(n int) Definition {
	d := NewDefinition(n)
	full := Full(n)
	for i := 0; i < n; i++ {
		d.requested.Set(uint(Singleton(i)))
		if rest := full &^ Singleton(i); rest != 0 {
			d.requested.Set(uint(rest))
		}
	}
	d.requested.Set(uint(full))
	return d
}

// OneAny pairs every word with every non-empty subset of the other words.
func OneAny(n int) Definition {
	return FullDefinition(n)
}

var schemes = map[string]Scheme{
	"one-one":       OneOne,
	"one-preceding": OnePreceding,
	"one-all":       OneAll,
	"one-any":       OneAny,
}

// SchemeByName resolves a scheme by its configuration name.
func SchemeByName(name string) (Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown subset scheme %q (known: %v): %w", name, SchemeNames(), internalerr.ErrInvalidInput)
	}
	return s, nil
}

// SchemeNames lists the registered scheme names.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
