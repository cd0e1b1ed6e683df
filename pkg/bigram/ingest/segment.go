package ingest

import (
	"fmt"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

// Segmenter cuts a token stream into corpus units. Occurrence and
// co-occurrence are counted once per unit.
type Segmenter interface {
	Segment(tokens []string) [][]string
}

// Segmentation modes accepted by NewSegmenter.
const (
	ModeDocument = "document"
	ModeWindow   = "window"
)

// DocumentSegmenter treats the whole document as a single unit.
type DocumentSegmenter struct{}

// Segment implements Segmenter.
func (DocumentSegmenter) Segment(tokens []string) [][]string {
	if len(tokens) == 0 {
		return nil
	}
	return [][]string{append([]string(nil), tokens...)}
}

// SlidingWindow emits one unit per window position. A document shorter than
// the window yields a single unit.
type SlidingWindow struct {
	Size int
}

// Segment implements Segmenter.
func (w SlidingWindow) Segment(tokens []string) [][]string {
	if len(tokens) == 0 {
		return nil
	}
	if w.Size <= 0 || len(tokens) <= w.Size {
		return [][]string{append([]string(nil), tokens...)}
	}

	units := make([][]string, 0, len(tokens)-w.Size+1)
	for start := 0; start+w.Size <= len(tokens); start++ {
		units = append(units, append([]string(nil), tokens[start:start+w.Size]...))
	}
	return units
}

// NewSegmenter resolves a segmentation mode.
func NewSegmenter(mode string, windowSize int) (Segmenter, error) {
	switch mode {
	case "", ModeDocument:
		return DocumentSegmenter{}, nil
	case ModeWindow:
		if windowSize < 2 {
			return nil, fmt.Errorf("window size %d must be at least 2: %w", windowSize, internalerr.ErrInvalidInput)
		}
		return SlidingWindow{Size: windowSize}, nil
	default:
		return nil, fmt.Errorf("unknown segmentation mode %q: %w", mode, internalerr.ErrInvalidInput)
	}
}
