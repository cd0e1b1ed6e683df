package ingest

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Doc is one corpus document as read from JSONL input.
type Doc struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"`
	HTML  bool   `json:"html"` // body is HTML and needs stripping
}

// Key identifies the document for re-ingestion: the URL when present,
// otherwise the ID.
func (d *Doc) Key() string {
	if strings.TrimSpace(d.URL) != "" {
		return d.URL
	}
	return d.ID
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.Key()) == "" {
		return errors.New("doc URL or ID is required")
	}
	if strings.TrimSpace(d.Body) == "" && strings.TrimSpace(d.Title) == "" {
		return errors.New("doc title or body is required")
	}
	return nil
}

// ReadJSONL decodes one document per line. Blank lines are skipped and
// documents without an ID are assigned a ULID.
func ReadJSONL(r io.Reader) ([]Doc, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var docs []Doc
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var d Doc
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if d.ID == "" {
			d.ID = ulid.MustNew(ulid.Now(), entropy).String()
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
