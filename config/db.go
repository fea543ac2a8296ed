package config

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// OpenDB returns the process-wide handle on the SQLite file at path. The
// handle is capped at one connection, so every statement shares it; the file
// itself is only opened on first use.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

// CreateTables creates the schema if it does not exist yet.
func CreateTables(db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tables := []struct {
		name string
		ddl  string
	}{
		{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			fullName TEXT,
			email TEXT,
			role TEXT DEFAULT 'user',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			token_version INTEGER NOT NULL DEFAULT 0
		);`},
		{"suppliers", `
		CREATE TABLE IF NOT EXISTS suppliers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			contactInfo TEXT,
			address TEXT,
			email TEXT,
			phone TEXT
		);`},
		// supplier_id is not enforced; reads left join and tolerate dangling ids
		{"stock_items", `
		CREATE TABLE IF NOT EXISTS stock_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			supplier_id TEXT,
			FOREIGN KEY (supplier_id) REFERENCES suppliers(id)
		);`},
	}

	for _, t := range tables {
		if _, err := tx.Exec(t.ddl); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}

	if err := addTokenVersion(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	logger.Info("database tables ready")
	return nil
}

// addTokenVersion upgrades user tables created before sessions could be revoked.
func addTokenVersion(tx *sql.Tx) error {
	var n int
	err := tx.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('users') WHERE name = 'token_version'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect users table: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := tx.Exec(`ALTER TABLE users ADD COLUMN token_version INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("failed to add token_version column: %w", err)
	}
	return nil
}
