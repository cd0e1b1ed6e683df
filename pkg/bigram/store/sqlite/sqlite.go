package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/stats"
	"github.com/cognicore/bigram/pkg/bigram/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	key TEXT PRIMARY KEY,
	id TEXT NOT NULL,
	title TEXT,
	ingested_at TEXT,
	units TEXT NOT NULL,
	unit_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS token_df (
	token TEXT PRIMARY KEY,
	df INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS token_pairs (
	t1 TEXT NOT NULL,
	t2 TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(t1, t2)
);

CREATE INDEX IF NOT EXISTS token_pairs_t2 ON token_pairs(t2);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc stores a document and folds its units into the counts. The
// units of a previous version under the same key are subtracted first.
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.Key == "" {
		return fmt.Errorf("doc key is required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var oldUnits string
	err = tx.QueryRowContext(ctx, `SELECT units FROM docs WHERE key = ?`, d.Key).Scan(&oldUnits)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	default:
		var units [][]string
		if err := json.Unmarshal([]byte(oldUnits), &units); err != nil {
			return fmt.Errorf("decode units of %s: %w", d.Key, err)
		}
		if err := applyUnits(ctx, tx, units, -1); err != nil {
			return err
		}
	}

	unitsJSON, err := json.Marshal(d.Units)
	if err != nil {
		return err
	}
	ingested := d.IngestedAt
	if ingested.IsZero() {
		ingested = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO docs (key, id, title, ingested_at, units, unit_count)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	id=excluded.id,
	title=excluded.title,
	ingested_at=excluded.ingested_at,
	units=excluded.units,
	unit_count=excluded.unit_count;
`, d.Key, d.ID, d.Title, ingested.UTC().Format(time.RFC3339Nano), string(unitsJSON), len(d.Units))
	if err != nil {
		return err
	}

	if err := applyUnits(ctx, tx, d.Units, 1); err != nil {
		return err
	}

	return tx.Commit()
}

// applyUnits adds (delta=1) or subtracts (delta=-1) the counts of units.
func applyUnits(ctx context.Context, tx *sql.Tx, units [][]string, delta int) error {
	if len(units) == 0 {
		return nil
	}

	incDF, err := tx.PrepareContext(ctx, `
INSERT INTO token_df (token, df) VALUES (?, ?)
ON CONFLICT(token) DO UPDATE SET df = df + excluded.df;
`)
	if err != nil {
		return err
	}
	defer incDF.Close()

	incPair, err := tx.PrepareContext(ctx, `
INSERT INTO token_pairs (t1, t2, count) VALUES (?, ?, ?)
ON CONFLICT(t1, t2) DO UPDATE SET count = count + excluded.count;
`)
	if err != nil {
		return err
	}
	defer incPair.Close()

	for _, unit := range units {
		uniq := stats.UniqueSorted(unit)
		for _, tok := range uniq {
			if _, err := incDF.ExecContext(ctx, tok, delta); err != nil {
				return err
			}
		}
		for i := 0; i < len(uniq); i++ {
			for j := i + 1; j < len(uniq); j++ {
				if _, err := incPair.ExecContext(ctx, uniq[i], uniq[j], delta); err != nil {
					return err
				}
			}
		}
	}

	if delta < 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM token_df WHERE df <= 0`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM token_pairs WHERE count <= 0`); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc retrieves a document by key
func (s *sqliteStore) GetDoc(ctx context.Context, key string) (store.Doc, bool, error) {
	var (
		doc       store.Doc
		title     sql.NullString
		ingested  sql.NullString
		unitsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT key, id, title, ingested_at, units
FROM docs
WHERE key = ?;
`, key).Scan(&doc.Key, &doc.ID, &title, &ingested, &unitsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}

	doc.Title = title.String
	if ingested.String != "" {
		if parsed, perr := time.Parse(time.RFC3339Nano, ingested.String); perr == nil {
			doc.IngestedAt = parsed
		}
	}
	if err := json.Unmarshal([]byte(unitsJSON), &doc.Units); err != nil {
		return store.Doc{}, false, fmt.Errorf("decode units of %s: %w", key, err)
	}
	return doc, true, nil
}

// DocCount returns the number of stored documents
func (s *sqliteStore) DocCount(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&total)
	return total, err
}

// UnitCount returns the number of corpus units across all documents
func (s *sqliteStore) UnitCount(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(unit_count), 0) FROM docs`).Scan(&total)
	return total, err
}

// OccurrenceCount returns the number of units containing word
func (s *sqliteStore) OccurrenceCount(ctx context.Context, word string) (int64, error) {
	var df int64
	err := s.db.QueryRowContext(ctx, `SELECT df FROM token_df WHERE token=?`, word).Scan(&df)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return df, err
}

// CooccurrenceCount returns the number of units containing both words
func (s *sqliteStore) CooccurrenceCount(ctx context.Context, a, b string) (int64, error) {
	if a == b {
		return s.OccurrenceCount(ctx, a)
	}
	pair := stats.NewPair(a, b)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT count FROM token_pairs WHERE t1=? AND t2=?`, pair.T1, pair.T2).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}

// TotalWordUnits returns the sum of all occurrence counts
func (s *sqliteStore) TotalWordUnits(ctx context.Context) (float64, error) {
	return s.sum(ctx, `SELECT COALESCE(SUM(df), 0) FROM token_df`)
}

// TotalCooccurrenceUnits returns the sum of all pair counts
func (s *sqliteStore) TotalCooccurrenceUnits(ctx context.Context) (float64, error) {
	return s.sum(ctx, `SELECT COALESCE(SUM(count), 0) FROM token_pairs`)
}

func (s *sqliteStore) sum(ctx context.Context, query string) (float64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return float64(total), nil
}

// TopNeighbors returns the top K tokens ranked by co-occurrence count.
func (s *sqliteStore) TopNeighbors(ctx context.Context, token string, k int) ([]store.Neighbor, error) {
	if k <= 0 {
		k = 10
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT
	CASE WHEN t1 = ? THEN t2 ELSE t1 END AS neighbor,
	count
FROM token_pairs
WHERE t1 = ? OR t2 = ?
ORDER BY count DESC, neighbor ASC
LIMIT ?;
`, token, token, token, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var neighbors []store.Neighbor
	for rows.Next() {
		var n store.Neighbor
		if err := rows.Scan(&n.Token, &n.Count); err != nil {
			return nil, err
		}
		neighbors = append(neighbors, n)
	}
	return neighbors, rows.Err()
}
