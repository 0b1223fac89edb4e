package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/psousa50/codenames50-sub000/internal/game"
)

func sqliteStore(t *testing.T) Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`
	    CREATE TABLE game_snapshots (
	        id         TEXT PRIMARY KEY,
	        snapshot   TEXT NOT NULL,
	        updated_at TEXT NOT NULL
	    )`); err != nil {
		t.Fatal(err)
	}
	return NewSQLiteStore(db)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := sqliteStore(t)

	g := game.NewGame("g1", "u1", game.Config{Language: "en", Variant: game.Interception})
	if err := st.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "g1" || got.Config.Variant != game.Interception {
		t.Fatalf("snapshot did not round-trip: %+v", got)
	}

	// Upsert on the same id replaces the snapshot.
	g2 := game.AddPlayerAction(g, "u2")
	if err := st.Save(ctx, g2); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got, _ = st.Get(ctx, "g1")
	if len(got.Players) != 2 {
		t.Fatalf("expected the later snapshot, got %d players", len(got.Players))
	}

	if err := st.Delete(ctx, "g1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected gameNotFound, got %v", err)
	}
}
