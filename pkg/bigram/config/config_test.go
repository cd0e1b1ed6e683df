package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/bigram/pkg/bigram/ingest"
	"github.com/cognicore/bigram/pkg/bigram/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "bigram.yaml", `store:
  path: /tmp/corpus.db
segmentation:
  mode: window
  window_size: 20
estimation:
  min_frequency: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("driver should keep default, got %q", cfg.Store.Driver)
	}
	if cfg.Store.Path != "/tmp/corpus.db" {
		t.Errorf("path = %q", cfg.Store.Path)
	}
	if cfg.Segmentation.Mode != ingest.ModeWindow || cfg.Segmentation.WindowSize != 20 {
		t.Errorf("segmentation = %+v", cfg.Segmentation)
	}
	if cfg.Estimation.MinFrequency != 3 {
		t.Errorf("min_frequency = %d, want 3", cfg.Estimation.MinFrequency)
	}
	if cfg.Estimation.Scheme != "one-one" {
		t.Errorf("scheme should keep default, got %q", cfg.Estimation.Scheme)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "store: [unclosed"},
		{"unknown driver", "store:\n  driver: postgres\n"},
		{"sqlite without path", "store:\n  driver: sqlite\n  path: \"\"\n"},
		{"negative min frequency", "estimation:\n  min_frequency: -1\n"},
		{"unknown scheme", "estimation:\n  scheme: all-all\n"},
		{"tiny window", "segmentation:\n  mode: window\n  window_size: 1\n"},
		{"unknown mode", "segmentation:\n  mode: sentence\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bigram.yaml", tt.content))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/bigram.yaml"); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", `terms:
  - the
  - a
  - and
`)

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}

	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}
}

func TestComponents(t *testing.T) {
	cfg := Default()
	cfg.Stoplist = writeFile(t, "stoplist.yaml", "terms:\n  - the\n")
	cfg.Segmentation = SegmentationConfig{Mode: ingest.ModeWindow, WindowSize: 2}

	comp, err := cfg.Components()
	if err != nil {
		t.Fatalf("Components: %v", err)
	}

	out := comp.Pipeline.Process(ingest.Doc{ID: "1", Body: "the alpha beta gamma"})
	if len(out.Tokens) != 3 {
		t.Errorf("stoplist should drop 'the', got %v", out.Tokens)
	}
	if len(out.Units) != 2 {
		t.Errorf("window of 2 over 3 tokens should yield 2 units, got %d", len(out.Units))
	}
	if got := comp.Scheme(3).Requested(); len(got) != 6 {
		t.Errorf("one-one scheme over 3 words should request 6 patterns, got %v", got)
	}
}

func TestComponentsMissingStoplist(t *testing.T) {
	cfg := Default()
	cfg.Stoplist = "/nonexistent/stoplist.yaml"

	if _, err := cfg.Components(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}
