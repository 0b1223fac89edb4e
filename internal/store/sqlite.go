// internal/store/sqlite.go
//
// SQLite-backed Store. Each snapshot is one row in game_snapshots with
// the full JSON document in a TEXT column, so the schema never chases
// the engine's state shape. Writes are last-write-wins by game id.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/psousa50/codenames50-sub000/internal/game"
)

type sqlite struct {
	db *sql.DB
}

// NewSQLiteStore constructs a Store over an opened database. The
// game_snapshots table comes from the sql/ migrations.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqlite{db: db}
}

func (s *sqlite) Save(ctx context.Context, g game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", g.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
	    INSERT INTO game_snapshots (id, snapshot, updated_at)
	    VALUES (?, ?, ?)
	    ON CONFLICT(id) DO UPDATE SET snapshot=excluded.snapshot, updated_at=excluded.updated_at`,
		g.ID, string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", g.ID, err)
	}
	return nil
}

func (s *sqlite) Get(ctx context.Context, id string) (game.Game, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM game_snapshots WHERE id=?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Game{}, ErrNotFound
	}
	if err != nil {
		return game.Game{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	var g game.Game
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return game.Game{}, fmt.Errorf("unmarshal snapshot %s: %w", id, err)
	}
	return g, nil
}

func (s *sqlite) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_snapshots WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return nil
}
