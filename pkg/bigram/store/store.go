package store

import (
	"context"
	"time"

	"github.com/cognicore/bigram/pkg/bigram/stats"
)

// Store persists corpus units and serves their statistics.
//
// Counts follow boolean semantics: a token repeated within a unit counts
// once. Re-upserting a document key replaces its previous units.
type Store interface {
	stats.Provider

	Close() error

	// Docs
	UpsertDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, key string) (Doc, bool, error)
	DocCount(ctx context.Context) (int64, error)

	// Units & Counts
	UnitCount(ctx context.Context) (int64, error)
	TopNeighbors(ctx context.Context, token string, k int) ([]Neighbor, error)
}

// Doc represents a stored document and its corpus units
type Doc struct {
	Key        string
	ID         string
	Title      string
	IngestedAt time.Time
	Units      [][]string
}

// Neighbor is a token co-occurring with a query token
type Neighbor struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}
