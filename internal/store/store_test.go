package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func tempDB(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New(%q): %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_creates_database(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestNew_invalid_path(t *testing.T) {
	_, err := New("/nonexistent/path/to/db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestMigrate_applies_once(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	applied := 0
	migrations := []Migration{
		{
			Version:     1,
			Description: "create test table",
			Up: func(tx *sql.Tx) error {
				applied++
				_, err := tx.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT)")
				return err
			},
		},
	}

	if err := s.Migrate(ctx, "onboard", migrations); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := s.Migrate(ctx, "onboard", migrations); err != nil {
		t.Fatalf("Migrate (second run): %v", err)
	}
	if applied != 1 {
		t.Errorf("migration applied %d times, want 1", applied)
	}

	if _, err := s.DB().Exec("INSERT INTO test_items (name) VALUES ('a')"); err != nil {
		t.Errorf("migrated table not usable: %v", err)
	}
}

func TestTx_rolls_back_on_error(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	if _, err := s.DB().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	wantErr := os.ErrInvalid
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO t (id) VALUES (1)"); err != nil {
			return err
		}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Tx error = %v, want %v", err, wantErr)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM t").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("row count after rollback = %d, want 0", count)
	}
}
