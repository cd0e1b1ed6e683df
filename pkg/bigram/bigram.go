// Package bigram ties ingestion, count storage and subset probability
// estimation together.
package bigram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cognicore/bigram/pkg/bigram/config"
	"github.com/cognicore/bigram/pkg/bigram/ingest"
	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/prob"
	"github.com/cognicore/bigram/pkg/bigram/store"
	"github.com/cognicore/bigram/pkg/bigram/store/memstore"
	"github.com/cognicore/bigram/pkg/bigram/store/sqlite"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

// Engine is the main facade
type Engine struct {
	store     store.Store
	pipeline  *ingest.Pipeline
	estimator *prob.Estimator
	scheme    subsets.Scheme
	logger    *slog.Logger
}

// Options configures an Engine instance
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	Scheme   subsets.Scheme
	Logger   *slog.Logger
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = ingest.NewPipeline(nil, nil)
	}
	scheme := opts.Scheme
	if scheme == nil {
		scheme = subsets.OneAny
	}
	return &Engine{
		store:     opts.Store,
		pipeline:  pipeline,
		estimator: prob.New(opts.Store, prob.WithLogger(logger)),
		scheme:    scheme,
		logger:    logger,
	}
}

// Open builds an Engine from configuration, opening the configured store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	comp, err := cfg.Components()
	if err != nil {
		return nil, err
	}

	var st store.Store
	switch cfg.Store.Driver {
	case config.DriverMemory:
		st = memstore.New()
	case config.DriverSQLite:
		st, err = sqlite.OpenSQLite(ctx, cfg.Store.Path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("store driver %q: %w", cfg.Store.Driver, internalerr.ErrInvalidConfig)
	}

	return New(Options{
		Store:    st,
		Pipeline: comp.Pipeline,
		Scheme:   comp.Scheme,
		Logger:   logger,
	}), nil
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store exposes the underlying count store
func (e *Engine) Store() store.Store {
	return e.store
}

// Ingest segments a document and stores its units. Re-ingesting the same
// key replaces the document's previous contribution.
func (e *Engine) Ingest(ctx context.Context, d ingest.Doc) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, internalerr.ErrInvalidInput)
	}

	processed := e.pipeline.Process(d)
	if err := e.store.UpsertDoc(ctx, store.Doc{
		Key:        d.Key(),
		ID:         d.ID,
		Title:      d.Title,
		IngestedAt: time.Now(),
		Units:      processed.Units,
	}); err != nil {
		return fmt.Errorf("store %s: %w", d.Key(), err)
	}

	e.logger.Debug("ingested document",
		"key", d.Key(),
		"tokens", len(processed.Tokens),
		"units", len(processed.Units))
	return nil
}

// Estimate computes subset probabilities for groups using the configured
// subset scheme to decide which patterns are requested.
func (e *Engine) Estimate(ctx context.Context, groups [][]string, minFrequency int64) ([]subsets.Probabilities, error) {
	defs := make([]subsets.Definition, len(groups))
	for i, g := range groups {
		defs[i] = e.scheme(len(g))
	}
	return e.estimator.Estimate(ctx, groups, defs, minFrequency)
}

// EstimateWith computes subset probabilities for explicit definitions.
func (e *Engine) EstimateWith(ctx context.Context, groups [][]string, defs []subsets.Definition, minFrequency int64) ([]subsets.Probabilities, error) {
	return e.estimator.Estimate(ctx, groups, defs, minFrequency)
}
