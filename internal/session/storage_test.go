package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/souhardya/vervoer-core/internal/infrastructure/database"
)

func testTokenStorage(t *testing.T) *SQLiteTokenStorage {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE session_tokens (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("creating session_tokens table: %v", err)
	}

	return NewSQLiteTokenStorage(db.DB)
}

func TestSQLiteTokenStorage_RoundTrip(t *testing.T) {
	storage := testTokenStorage(t)
	ctx := context.Background()

	if _, err := storage.Load(ctx); !errors.Is(err, ErrNoStoredToken) {
		t.Errorf("Load on empty storage = %v, want ErrNoStoredToken", err)
	}

	if err := storage.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "tok-1" {
		t.Errorf("Load = %q, want tok-1", got)
	}
}

func TestSQLiteTokenStorage_SaveReplaces(t *testing.T) {
	storage := testTokenStorage(t)
	ctx := context.Background()

	for _, tok := range []string{"tok-1", "tok-2", "tok-3"} {
		if err := storage.Save(ctx, tok); err != nil {
			t.Fatalf("Save(%q) failed: %v", tok, err)
		}
	}

	got, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "tok-3" {
		t.Errorf("Load = %q, want tok-3 (single-row upsert)", got)
	}
}

func TestSQLiteTokenStorage_Clear(t *testing.T) {
	storage := testTokenStorage(t)
	ctx := context.Background()

	// Clearing empty storage is not an error.
	if err := storage.Clear(ctx); err != nil {
		t.Errorf("Clear on empty storage = %v, want nil", err)
	}

	if err := storage.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := storage.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := storage.Load(ctx); !errors.Is(err, ErrNoStoredToken) {
		t.Errorf("Load after Clear = %v, want ErrNoStoredToken", err)
	}
}
