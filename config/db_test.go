package config

import "testing"

func TestCreateTablesUpgradesUsersTable(t *testing.T) {
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		fullName TEXT,
		email TEXT,
		role TEXT DEFAULT 'user',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("create legacy users table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO users (id, username, password) VALUES ('U001', 'admin', 'admin123')`); err != nil {
		t.Fatalf("insert legacy user: %v", err)
	}

	if err := CreateTables(db, nil); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	// a second run must find the column and leave it alone
	if err := CreateTables(db, nil); err != nil {
		t.Fatalf("CreateTables again: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT token_version FROM users WHERE id = 'U001'`).Scan(&version); err != nil {
		t.Fatalf("read token_version: %v", err)
	}
	if version != 0 {
		t.Fatalf("token_version = %d, want 0", version)
	}
}
