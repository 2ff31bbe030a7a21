package shared

import "testing"

func TestNewDatabase(t *testing.T) {
	t.Run("applies pool limits from config", func(t *testing.T) {
		db, err := NewDatabase(DatabaseConfig{Path: ":memory:", MaxOpenConns: 3, MaxIdleConns: 2})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if got := db.Stats().MaxOpenConnections; got != 3 {
			t.Errorf("expected max open connections 3, got %d", got)
		}
	})

	t.Run("zero limits keep driver defaults", func(t *testing.T) {
		db, err := NewDatabase(DatabaseConfig{Path: ":memory:"})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// 0 means unlimited; the in-memory database relies on an idle
		// connection staying open.
		if got := db.Stats().MaxOpenConnections; got != 0 {
			t.Errorf("expected unlimited open connections, got %d", got)
		}
		if _, err := db.Exec("CREATE TABLE scratch (id INTEGER)"); err != nil {
			t.Errorf("expected a usable connection: %v", err)
		}
	})

	t.Run("unreachable path fails", func(t *testing.T) {
		if _, err := NewDatabase(DatabaseConfig{Path: "/nonexistent-dir/journal.db"}); err == nil {
			t.Error("expected an error for an unreachable path")
		}
	})
}
