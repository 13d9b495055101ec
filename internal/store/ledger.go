package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/satcalc/internal/satmath"
)

// Entry is one appended value and the saturated running total after it.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Seq        int64     `json:"seq"`
	Value      int32     `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
	Stamp      string    `json:"stamp"`
	Total      int32     `json:"total"`
}

// Append records value and returns the new entry with its running total.
//
// The transaction takes the write lock up front (Open sets _txlock=immediate),
// so concurrent writers on the same file wait on busy_timeout instead of
// failing a read-to-write lock upgrade.
func (s *Store) Append(ctx context.Context, value int32) (Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("append: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var lastSeq int64
	var prev int32
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0),
		       COALESCE((SELECT total FROM entries ORDER BY seq DESC LIMIT 1), 0)
		FROM entries
	`).Scan(&lastSeq, &prev)
	if err != nil {
		return Entry{}, fmt.Errorf("append: read head: %w", err)
	}

	stamp := s.ids.Next()
	seq := lastSeq + 1
	total := satmath.Add(prev, value)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO entries (id, seq, value, stamp, recorded_at, total)
		VALUES (?, ?, ?, ?, ?, ?)
	`, stamp.ID.String(), seq, value, stamp.String(), stamp.Time.Unix(), total); err != nil {
		return Entry{}, fmt.Errorf("append: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("append: commit: %w", err)
	}

	if o := satmath.Overflowed(prev, value); o != satmath.None {
		s.logger.Warn("tally saturated", "seq", seq, "value", value, "overflow", o)
	}
	s.logger.Debug("entry appended", "id", stamp.ID, "seq", seq, "total", total)

	return Entry{
		ID:         stamp.ID,
		Seq:        seq,
		Value:      value,
		RecordedAt: time.Unix(stamp.Time.Unix(), 0),
		Stamp:      stamp.String(),
		Total:      total,
	}, nil
}

// Entries returns every entry in seq order.
// Returns an empty slice (not nil) for an empty ledger.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, value, stamp, recorded_at, total
		FROM entries
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e          Entry
			idText     string
			recordedAt int64
		)
		if err := rows.Scan(&idText, &e.Seq, &e.Value, &e.Stamp, &recordedAt, &e.Total); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		id, err := uuid.Parse(idText)
		if err != nil {
			return nil, fmt.Errorf("entry %d: id: %w", e.Seq, err)
		}
		e.ID = id
		e.RecordedAt = time.Unix(recordedAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Total returns the saturated running total of the last entry, or 0.
func (s *Store) Total(ctx context.Context) (int32, error) {
	var total int32
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT total FROM entries ORDER BY seq DESC LIMIT 1), 0)
	`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("query total: %w", err)
	}
	return total, nil
}
