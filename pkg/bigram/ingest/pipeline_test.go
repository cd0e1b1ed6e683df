package ingest

import (
	"reflect"
	"testing"
)

func TestPipelineDocumentUnits(t *testing.T) {
	p := NewPipeline(NewTokenizer([]string{"the"}), DocumentSegmenter{})

	out := p.Process(Doc{ID: "1", Title: "Topic Models", Body: "the coherence of topic models"})

	wantTokens := []string{"topic", "models", "coherence", "of", "topic", "models"}
	if !reflect.DeepEqual(out.Tokens, wantTokens) {
		t.Errorf("Tokens = %v, want %v", out.Tokens, wantTokens)
	}
	if len(out.Units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(out.Units))
	}
}

func TestPipelineWindowUnits(t *testing.T) {
	p := NewPipeline(NewTokenizer(nil), SlidingWindow{Size: 2})

	out := p.Process(Doc{ID: "1", Body: "alpha beta gamma delta"})
	if len(out.Units) != 3 {
		t.Errorf("expected 3 windows, got %d: %v", len(out.Units), out.Units)
	}
}

func TestPipelineStripsHTML(t *testing.T) {
	p := NewPipeline(nil, nil)

	out := p.Process(Doc{ID: "1", Body: "<p>alpha</p><script>ignored()</script><p>beta</p>", HTML: true})
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(out.Tokens, want) {
		t.Errorf("Tokens = %v, want %v", out.Tokens, want)
	}
}

func TestPipelineEmptyText(t *testing.T) {
	p := NewPipeline(NewTokenizer([]string{"the"}), nil)

	out := p.Process(Doc{ID: "1", Body: "the the the"})
	if len(out.Tokens) != 0 || len(out.Units) != 0 {
		t.Errorf("only stopwords should yield nothing, got %+v", out)
	}
}
