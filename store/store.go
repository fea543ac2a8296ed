// Package store is the persistence layer: parameterized SQL against the
// single SQLite database for users, suppliers and stock items.
//
// Lookups that find nothing return a nil entity (or an empty slice) and a nil
// error. A non-nil error always means the storage itself failed, or, for
// DeleteSupplier, that the delete was rejected.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrSupplierInUse rejects deleting a supplier that stock items still reference.
var ErrSupplierInUse = errors.New("cannot delete supplier: it is used by one or more stock items")

// Store implements every repository interface over one *sql.DB.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New wraps an open database handle.
func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Close releases the shared connection. Call once on shutdown.
func (s *Store) Close() error {
	return s.db.Close()
}

// fault logs a storage error and returns it wrapped with the operation name.
func (s *Store) fault(op string, err error, fields ...zap.Field) error {
	s.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("%s: %w", op, err)
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// timestamp scans SQLite time columns, which the driver may hand back either
// as time.Time or as text depending on how the value was written.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func (t *timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}
