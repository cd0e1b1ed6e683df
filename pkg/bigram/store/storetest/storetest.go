// Package storetest holds behaviour checks shared by store.Store implementations.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/store"
)

// Opener returns a fresh, empty store.
type Opener func(t *testing.T) store.Store

// FixtureUnits produce self counts w0=5 w1=2 w2=6 and pair counts
// (w0,w1)=2 (w0,w2)=3 (w1,w2)=1, so totals are 13 and 6.
var FixtureUnits = [][]string{
	{"w0", "w1", "w2"},
	{"w0", "w1"},
	{"w0", "w2"},
	{"w0", "w2"},
	{"w0"},
	{"w2"},
	{"w2"},
	{"w2"},
}

// Run exercises open against the store contract.
func Run(t *testing.T, open Opener) {
	t.Run("Counts", func(t *testing.T) { testCounts(t, open(t)) })
	t.Run("Reingest", func(t *testing.T) { testReingest(t, open(t)) })
	t.Run("GetDoc", func(t *testing.T) { testGetDoc(t, open(t)) })
	t.Run("TopNeighbors", func(t *testing.T) { testTopNeighbors(t, open(t)) })
	t.Run("EmptyKey", func(t *testing.T) { testEmptyKey(t, open(t)) })
	t.Run("Empty", func(t *testing.T) { testEmpty(t, open(t)) })
}

func testCounts(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	// split the fixture over two docs
	mustUpsert(t, st, store.Doc{Key: "a", ID: "1", Units: FixtureUnits[:3]})
	mustUpsert(t, st, store.Doc{Key: "b", ID: "2", Units: FixtureUnits[3:]})

	checkCount := func(name string, got int64, err error, want int64) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}

	n, err := st.OccurrenceCount(ctx, "w0")
	checkCount("OccurrenceCount(w0)", n, err, 5)
	n, err = st.OccurrenceCount(ctx, "w2")
	checkCount("OccurrenceCount(w2)", n, err, 6)
	n, err = st.CooccurrenceCount(ctx, "w2", "w0")
	checkCount("CooccurrenceCount(w2,w0)", n, err, 3)
	n, err = st.CooccurrenceCount(ctx, "w0", "w2")
	checkCount("CooccurrenceCount(w0,w2)", n, err, 3)
	n, err = st.CooccurrenceCount(ctx, "w1", "w1")
	checkCount("CooccurrenceCount(w1,w1)", n, err, 2)
	n, err = st.OccurrenceCount(ctx, "missing")
	checkCount("OccurrenceCount(missing)", n, err, 0)
	n, err = st.UnitCount(ctx)
	checkCount("UnitCount", n, err, 8)
	n, err = st.DocCount(ctx)
	checkCount("DocCount", n, err, 2)

	words, err := st.TotalWordUnits(ctx)
	if err != nil || words != 13 {
		t.Errorf("TotalWordUnits = %v, %v; want 13", words, err)
	}
	cooc, err := st.TotalCooccurrenceUnits(ctx)
	if err != nil || cooc != 6 {
		t.Errorf("TotalCooccurrenceUnits = %v, %v; want 6", cooc, err)
	}
}

func testReingest(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	mustUpsert(t, st, store.Doc{Key: "doc", Units: [][]string{{"alpha", "beta"}, {"alpha", "gamma"}}})
	mustUpsert(t, st, store.Doc{Key: "doc", Units: [][]string{{"alpha", "delta"}}})

	if n, _ := st.OccurrenceCount(ctx, "alpha"); n != 1 {
		t.Errorf("alpha should count 1 after re-ingest, got %d", n)
	}
	if n, _ := st.OccurrenceCount(ctx, "beta"); n != 0 {
		t.Errorf("beta should be gone after re-ingest, got %d", n)
	}
	if n, _ := st.CooccurrenceCount(ctx, "alpha", "gamma"); n != 0 {
		t.Errorf("(alpha,gamma) should be gone after re-ingest, got %d", n)
	}
	if n, _ := st.CooccurrenceCount(ctx, "alpha", "delta"); n != 1 {
		t.Errorf("(alpha,delta) should count 1, got %d", n)
	}
	if n, _ := st.UnitCount(ctx); n != 1 {
		t.Errorf("UnitCount = %d, want 1", n)
	}
	if n, _ := st.DocCount(ctx); n != 1 {
		t.Errorf("DocCount = %d, want 1", n)
	}
	if total, _ := st.TotalCooccurrenceUnits(ctx); total != 1 {
		t.Errorf("TotalCooccurrenceUnits = %v, want 1", total)
	}
}

func testGetDoc(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	doc := store.Doc{Key: "https://example.com/a", ID: "01ABC", Title: "Title", Units: [][]string{{"alpha", "beta"}}}
	mustUpsert(t, st, doc)

	got, found, err := st.GetDoc(ctx, doc.Key)
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if !found {
		t.Fatal("doc should be found")
	}
	if got.ID != doc.ID || got.Title != doc.Title {
		t.Errorf("GetDoc = %+v, want %+v", got, doc)
	}
	if len(got.Units) != 1 || len(got.Units[0]) != 2 {
		t.Errorf("units not round-tripped: %v", got.Units)
	}

	_, found, err = st.GetDoc(ctx, "missing")
	if err != nil || found {
		t.Errorf("missing doc: found=%v err=%v", found, err)
	}
}

func testTopNeighbors(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	mustUpsert(t, st, store.Doc{Key: "a", Units: FixtureUnits})

	got, err := st.TopNeighbors(ctx, "w0", 10)
	if err != nil {
		t.Fatalf("TopNeighbors: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors, got %v", got)
	}
	if got[0].Token != "w2" || got[0].Count != 3 {
		t.Errorf("first neighbor = %+v, want w2/3", got[0])
	}
	if got[1].Token != "w1" || got[1].Count != 2 {
		t.Errorf("second neighbor = %+v, want w1/2", got[1])
	}

	got, err = st.TopNeighbors(ctx, "w0", 1)
	if err != nil || len(got) != 1 {
		t.Errorf("k=1 should limit results, got %v, %v", got, err)
	}
}

func testEmptyKey(t *testing.T, st store.Store) {
	defer st.Close()

	err := st.UpsertDoc(context.Background(), store.Doc{Units: [][]string{{"alpha"}}})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("empty key should be ErrInvalidInput, got %v", err)
	}
}

func testEmpty(t *testing.T, st store.Store) {
	ctx := context.Background()
	defer st.Close()

	words, err := st.TotalWordUnits(ctx)
	if err != nil || words != 0 {
		t.Errorf("empty TotalWordUnits = %v, %v", words, err)
	}
	n, err := st.UnitCount(ctx)
	if err != nil || n != 0 {
		t.Errorf("empty UnitCount = %d, %v", n, err)
	}
	neighbors, err := st.TopNeighbors(ctx, "anything", 5)
	if err != nil || len(neighbors) != 0 {
		t.Errorf("empty TopNeighbors = %v, %v", neighbors, err)
	}
}

func mustUpsert(t *testing.T, st store.Store, d store.Doc) {
	t.Helper()
	if err := st.UpsertDoc(context.Background(), d); err != nil {
		t.Fatalf("UpsertDoc(%s): %v", d.Key, err)
	}
}
