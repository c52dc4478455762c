package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/receiptwise/receipt-pipeline/internal/entity"
)

// Entry is one persisted scan: the raw text blob the caller keeps for
// debugging plus the record that came out of it.
type Entry struct {
	RunID      uuid.UUID
	ScannedAt  time.Time
	Mode       string
	RawText    string
	Record     entity.ReceiptRecord
	Confidence float64
}

// Store keeps caller-side scan audit rows in a local sqlite database. The
// pipeline itself never touches it; persistence stays on the caller's side of
// the interface.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scan_audit (
	run_id     TEXT PRIMARY KEY,
	scanned_at TEXT NOT NULL,
	mode       TEXT NOT NULL,
	raw_text   TEXT NOT NULL,
	record     TEXT NOT NULL,
	confidence REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_audit_confidence ON scan_audit(confidence);
`

// Open opens (and if needed creates) the audit database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one scan entry.
func (s *Store) Save(ctx context.Context, e Entry) error {
	rec, err := json.Marshal(e.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scan_audit (run_id, scanned_at, mode, raw_text, record, confidence)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID.String(),
		e.ScannedAt.UTC().Format(time.RFC3339),
		e.Mode,
		e.RawText,
		string(rec),
		e.Confidence,
	)
	if err != nil {
		return fmt.Errorf("insert audit row: %w", err)
	}
	s.logger.Debug("audit row saved", "run_id", e.RunID, "confidence", e.Confidence)
	return nil
}

// Get loads one entry by run id.
func (s *Store) Get(ctx context.Context, runID uuid.UUID) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, scanned_at, mode, raw_text, record, confidence
		 FROM scan_audit WHERE run_id = ?`, runID.String())
	return scanEntry(row)
}

// ListBelowConfidence returns entries with confidence below the cutoff,
// lowest first. Callers use it to surface records needing manual review.
func (s *Store) ListBelowConfidence(ctx context.Context, cutoff float64, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, scanned_at, mode, raw_text, record, confidence
		 FROM scan_audit WHERE confidence < ? ORDER BY confidence ASC LIMIT ?`,
		cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var (
		e        Entry
		id       string
		ts       string
		recBytes string
	)
	if err := r.Scan(&id, &ts, &e.Mode, &e.RawText, &recBytes, &e.Confidence); err != nil {
		return Entry{}, fmt.Errorf("scan audit row: %w", err)
	}
	runID, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("parse run id: %w", err)
	}
	e.RunID = runID
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		e.ScannedAt = t
	}
	if err := json.Unmarshal([]byte(recBytes), &e.Record); err != nil {
		return Entry{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return e, nil
}
