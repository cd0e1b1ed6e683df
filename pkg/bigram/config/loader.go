package config

import (
	"fmt"

	"github.com/cognicore/bigram/pkg/bigram/ingest"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

// Components holds the pieces built from a configuration
type Components struct {
	Pipeline *ingest.Pipeline
	Scheme   subsets.Scheme
}

// Components builds the ingestion pipeline and subset scheme.
func (c *Config) Components() (*Components, error) {
	var stops []string
	if c.Stoplist != "" {
		sl, err := LoadStoplist(c.Stoplist)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = sl.Terms
	}

	segmenter, err := ingest.NewSegmenter(c.Segmentation.Mode, c.Segmentation.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("segmentation: %w", err)
	}
	scheme, err := subsets.SchemeByName(c.Estimation.Scheme)
	if err != nil {
		return nil, fmt.Errorf("estimation scheme: %w", err)
	}

	return &Components{
		Pipeline: ingest.NewPipeline(ingest.NewTokenizer(stops), segmenter),
		Scheme:   scheme,
	}, nil
}
