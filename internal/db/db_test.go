package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&count); err != nil {
		t.Errorf("table kv_store: %v", err)
	}
}

func TestMemoryDatabaseIsShared(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO kv_store (key, value) VALUES ('a', '1')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var value string
	if err := d.QueryRow(`SELECT value FROM kv_store WHERE key = 'a'`).Scan(&value); err != nil {
		t.Fatalf("select: %v", err)
	}
	if value != "1" {
		t.Errorf("expected '1', got %q", value)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "poe2genie.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("expected path %q, got %q", path, d.Path())
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}
