package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/satcalc/internal/ident"
	"github.com/roach88/satcalc/internal/satmath"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on entries.stamp for history listing
// 2 - Added entries.recorded_at (unix seconds) and entries.total
const currentSchemaVersion = 2

// Store is a durable tally ledger.
type Store struct {
	db     *sql.DB
	ids    *ident.Generator
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now    func() time.Time
	newID  func() uuid.UUID
	logger *slog.Logger
}

// WithClock overrides the wall clock used for entry stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithUUIDs overrides the UUID source used for entry IDs.
func WithUUIDs(newID func() uuid.UUID) Option {
	return func(o *options) { o.newID = newID }
}

// WithLogger sets the logger for store diagnostics. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open creates or opens a SQLite ledger at the given path.
// Applies required pragmas and migrations automatically.
//
// This function is idempotent - safe to call multiple times.
func Open(path string, opts ...Option) (*Store, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	// _txlock=immediate makes BEGIN take the write lock, so a second writer
	// waits on the busy timeout rather than failing a lock upgrade.
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	o.logger.Debug("ledger opened", "path", path, "schema_version", currentSchemaVersion)

	return &Store{
		db:     db,
		ids:    ident.NewWithSources(o.now, o.newID),
		logger: o.logger,
	}, nil
}

func dsn(path string) string {
	return "file:" + path + "?_txlock=immediate&_busy_timeout=5000"
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := migrateToV2(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_entries_stamp ON entries(stamp)`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// migrateToV2 adds recorded_at and total to ledgers created before v2 and
// backfills them. Old rows only carry local stamp text, so their instant is
// recovered by parsing it in the current zone; this is best effort.
func migrateToV2(db *sql.DB) error {
	cols, err := tableColumns(db, "entries")
	if err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}
	if cols["recorded_at"] && cols["total"] {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate to v2: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, stmt := range []string{
		`ALTER TABLE entries ADD COLUMN recorded_at INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE entries ADD COLUMN total INTEGER NOT NULL DEFAULT 0`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}

	type legacyRow struct {
		id    string
		value int32
		stamp string
	}
	rows, err := tx.Query(`SELECT id, value, stamp FROM entries ORDER BY seq ASC`)
	if err != nil {
		return fmt.Errorf("migrate to v2: read: %w", err)
	}
	var legacy []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.id, &r.value, &r.stamp); err != nil {
			rows.Close()
			return fmt.Errorf("migrate to v2: scan: %w", err)
		}
		legacy = append(legacy, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("migrate to v2: iterate: %w", err)
	}

	var total int32
	for _, r := range legacy {
		total = satmath.Add(total, r.value)
		var recordedAt int64
		if stamp, err := ident.Parse(r.stamp); err == nil {
			recordedAt = stamp.Time.Unix()
		}
		if _, err := tx.Exec(`UPDATE entries SET recorded_at = ?, total = ? WHERE id = ?`,
			recordedAt, total, r.id); err != nil {
			return fmt.Errorf("migrate to v2: backfill %s: %w", r.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate to v2: commit: %w", err)
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
