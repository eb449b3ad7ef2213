// Package sqlite provides the durable persistence adapter backed by an
// embedded SQLite database. It mirrors the semantics of the memory adapter:
// stores persist what they are told and never evaluate lifecycle rules.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Store owns the database handle and bundles the per-port views over it.
type Store struct {
	db *sql.DB

	Projects *ProjectStore
	Tasks    *TaskStore
	Stages   *StageStore
	Activity *ActivityStore

	// now is injectable for deterministic timestamps in tests.
	now func() time.Time
}

// Open connects to the SQLite database at the given DSN, enables foreign
// keys, and applies any pending migrations. The returned Store is ready
// for use.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite: empty DSN")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", dsn+sep+"_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// churn under concurrent request handling.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	s.Projects = &ProjectStore{s: s}
	s.Tasks = &TaskStore{s: s}
	s.Stages = &StageStore{s: s}
	s.Activity = &ActivityStore{s: s}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock overrides the timestamp source. For tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Name identifies the store for health reporting.
func (s *Store) Name() string {
	return "database"
}

// HealthCheck pings the database, reporting readiness of the storage layer.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

func newDocumentID() string {
	return uuid.NewString()
}

// Timestamps are stored as RFC 3339 text so values round-trip independent
// of driver type mapping.

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func decodeTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := decodeTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
