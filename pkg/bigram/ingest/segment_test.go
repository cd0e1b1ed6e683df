package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

func TestDocumentSegmenter(t *testing.T) {
	tokens := []string{"a1", "b2", "c3"}
	units := DocumentSegmenter{}.Segment(tokens)

	if len(units) != 1 || !reflect.DeepEqual(units[0], tokens) {
		t.Errorf("Segment = %v, want one unit", units)
	}

	units[0][0] = "changed"
	if tokens[0] != "a1" {
		t.Error("units should not alias the input")
	}

	if got := (DocumentSegmenter{}).Segment(nil); got != nil {
		t.Errorf("empty input should yield no units, got %v", got)
	}
}

func TestSlidingWindow(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		tokens []string
		want   [][]string
	}{
		{"windows", 2, []string{"aa", "bb", "cc"}, [][]string{{"aa", "bb"}, {"bb", "cc"}}},
		{"exact fit", 3, []string{"aa", "bb", "cc"}, [][]string{{"aa", "bb", "cc"}}},
		{"short document", 5, []string{"aa", "bb"}, [][]string{{"aa", "bb"}}},
		{"empty", 3, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlidingWindow{Size: tt.size}.Segment(tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSegmenter(t *testing.T) {
	if s, err := NewSegmenter("", 0); err != nil || s != (DocumentSegmenter{}) {
		t.Errorf("default mode should be document, got %v, %v", s, err)
	}
	s, err := NewSegmenter(ModeWindow, 10)
	if err != nil {
		t.Fatalf("NewSegmenter(window): %v", err)
	}
	if w, ok := s.(SlidingWindow); !ok || w.Size != 10 {
		t.Errorf("expected SlidingWindow{10}, got %#v", s)
	}

	for _, bad := range []struct {
		mode string
		size int
	}{{ModeWindow, 1}, {"sentence", 0}} {
		if _, err := NewSegmenter(bad.mode, bad.size); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("NewSegmenter(%q, %d) should fail with ErrInvalidInput, got %v", bad.mode, bad.size, err)
		}
	}
}
