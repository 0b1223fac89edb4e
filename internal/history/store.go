// internal/history/store.go
//
// Match results outside the engine. The core only carries the current
// snapshot; once a match ends, the boundary records the outcome here for
// player stats and leaderboards. SQLite-backed, schema in sql/.

package history

import (
	"context"
	"database/sql"
	"time"
)

// Result is one finished match.
type Result struct {
	GameID  string    `json:"gameId"`
	Variant string    `json:"variant"`
	Winner  string    `json:"winner"` // "red" | "blue" | "" for an interception tie
	EndedAt time.Time `json:"endedAt"`
	Players []PlayerResult
}

// PlayerResult is one roster member's side of a finished match.
type PlayerResult struct {
	UserID string `json:"userId"`
	Team   string `json:"team"`
	Won    bool   `json:"won"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DateKey returns YYYY-MM-DD in UTC, the bucket used for daily activity
// queries.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Record stores a finished match and its per-player rows, and bumps
// games-played/wins counters for players holding an account. A repeated
// game id is ignored so a double-finish cannot double-count.
func (s *Store) Record(ctx context.Context, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	    INSERT OR IGNORE INTO matches (game_id, variant, winner, date, ended_at)
	    VALUES (?,?,?,?,?)`,
		r.GameID, r.Variant, r.Winner, DateKey(r.EndedAt), r.EndedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil // already recorded
	}

	for _, p := range r.Players {
		if _, err := tx.ExecContext(ctx, `
		    INSERT INTO match_players (game_id, user_id, team, won)
		    VALUES (?,?,?,?)`, r.GameID, p.UserID, p.Team, p.Won); err != nil {
			return err
		}
		win := 0
		if p.Won {
			win = 1
		}
		if _, err := tx.ExecContext(ctx, `
		    UPDATE users SET games_played = games_played + 1, wins = wins + ?
		    WHERE id = ?`, win, p.UserID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Wins        int    `json:"wins"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// Leaderboard lists the winningest account holders.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
	    SELECT id, username, wins, games_played
	    FROM users
	    WHERE games_played > 0
	    ORDER BY wins DESC, games_played ASC, username ASC
	    LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Wins, &r.GamesPlayed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MatchRow is one entry of a player's match history.
type MatchRow struct {
	GameID  string `json:"gameId"`
	Variant string `json:"variant"`
	Team    string `json:"team"`
	Won     bool   `json:"won"`
	EndedAt string `json:"endedAt"`
}

// ForUser lists a player's most recent finished matches.
func (s *Store) ForUser(ctx context.Context, userID string, limit int) ([]MatchRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
	    SELECT m.game_id, m.variant, p.team, p.won, m.ended_at
	    FROM match_players p JOIN matches m ON m.game_id = p.game_id
	    WHERE p.user_id = ?
	    ORDER BY m.ended_at DESC
	    LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRow
	for rows.Next() {
		var r MatchRow
		if err := rows.Scan(&r.GameID, &r.Variant, &r.Team, &r.Won, &r.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayedOn counts matches finished on a given UTC date, a lightweight
// daily-activity stat for the landing page.
func (s *Store) PlayedOn(ctx context.Context, date string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM matches WHERE date = ?`, date).Scan(&n)
	return n, err
}
