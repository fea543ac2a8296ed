package config

import (
	"database/sql"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := CreateTables(db, nil); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	return db
}

func plain(s string) (string, error) { return s, nil }

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSeedInsertsOnce(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Seed(db, plain, nil); err != nil {
			t.Fatalf("Seed run %d: %v", i+1, err)
		}
	}

	if got := count(t, db, "users"); got != 1 {
		t.Errorf("users = %d, want 1", got)
	}
	if got := count(t, db, "suppliers"); got != 3 {
		t.Errorf("suppliers = %d, want 3", got)
	}
	if got := count(t, db, "stock_items"); got != 5 {
		t.Errorf("stock_items = %d, want 5", got)
	}

	var role, password string
	if err := db.QueryRow("SELECT role, password FROM users WHERE id = 'U001'").Scan(&role, &password); err != nil {
		t.Fatalf("read admin: %v", err)
	}
	if role != "admin" || password != "admin123" {
		t.Fatalf("admin row = (%q, %q)", role, password)
	}
}

func TestSeedSkipsSamplesWhenSuppliersExist(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec("INSERT INTO suppliers (id, name) VALUES ('X', 'Existing')"); err != nil {
		t.Fatal(err)
	}

	if err := Seed(db, plain, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if got := count(t, db, "stock_items"); got != 0 {
		t.Fatalf("stock_items = %d, want 0", got)
	}
	if got := count(t, db, "users"); got != 1 {
		t.Fatalf("admin should still be created, users = %d", got)
	}
}

func TestLoadSeedData(t *testing.T) {
	data, err := LoadSeedData()
	if err != nil {
		t.Fatalf("LoadSeedData: %v", err)
	}
	if data.Items[0].ID != "I001" || data.Items[0].Quantity != 15 {
		t.Fatalf("first item = %+v", data.Items[0])
	}
	if data.Items[3].Description != "A4 printing paper, 500 sheets" {
		t.Fatalf("quoted description parsed as %q", data.Items[3].Description)
	}
}
