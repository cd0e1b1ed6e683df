package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/stats"
	"github.com/cognicore/bigram/pkg/bigram/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	docs    map[string]store.Doc
	counter *stats.Counter
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs:    make(map[string]store.Doc),
		counter: stats.NewCounter(),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDoc stores a document, replacing the units of an existing key.
func (s *Store) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.Key == "" {
		return fmt.Errorf("doc key is required: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.docs[d.Key]; ok {
		for _, unit := range old.Units {
			s.counter.RemoveUnit(unit)
		}
	}
	for _, unit := range d.Units {
		s.counter.AddUnit(unit)
	}
	s.docs[d.Key] = copyDoc(d)
	return nil
}

// GetDoc returns a document by key.
func (s *Store) GetDoc(ctx context.Context, key string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[key]; ok {
		return copyDoc(doc), true, nil
	}
	return store.Doc{}, false, nil
}

// DocCount returns the number of stored documents.
func (s *Store) DocCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// UnitCount returns the number of counted units.
func (s *Store) UnitCount(ctx context.Context) (int64, error) {
	return s.counter.Units(), nil
}

// TopNeighbors returns the k tokens co-occurring most often with token.
func (s *Store) TopNeighbors(ctx context.Context, token string, k int) ([]store.Neighbor, error) {
	if k <= 0 {
		k = 10
	}

	var neighbors []store.Neighbor
	for tok, n := range s.counter.Neighbors(token) {
		neighbors = append(neighbors, store.Neighbor{Token: tok, Count: n})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Count != neighbors[j].Count {
			return neighbors[i].Count > neighbors[j].Count
		}
		return neighbors[i].Token < neighbors[j].Token
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// OccurrenceCount implements stats.Provider.
func (s *Store) OccurrenceCount(ctx context.Context, word string) (int64, error) {
	return s.counter.OccurrenceCount(ctx, word)
}

// CooccurrenceCount implements stats.Provider.
func (s *Store) CooccurrenceCount(ctx context.Context, a, b string) (int64, error) {
	return s.counter.CooccurrenceCount(ctx, a, b)
}

// TotalWordUnits implements stats.Provider.
func (s *Store) TotalWordUnits(ctx context.Context) (float64, error) {
	return s.counter.TotalWordUnits(ctx)
}

// TotalCooccurrenceUnits implements stats.Provider.
func (s *Store) TotalCooccurrenceUnits(ctx context.Context) (float64, error) {
	return s.counter.TotalCooccurrenceUnits(ctx)
}

func copyDoc(d store.Doc) store.Doc {
	units := make([][]string, len(d.Units))
	for i, u := range d.Units {
		units[i] = append([]string(nil), u...)
	}
	d.Units = units
	return d
}
