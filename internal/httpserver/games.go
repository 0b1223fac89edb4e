// internal/httpserver/games.go
//
// Match endpoints and the authoritative apply pipeline.
//
// Flow for every mutation: read the stored snapshot, run the engine's
// validate+reduce, persist the result, then broadcast the *intent* (the
// event with the reducer's arguments) so every client replays the same
// transition locally. Read-modify-write-broadcast all runs under the
// per-game lock, so clients receive events in apply order; a rejected
// action never touches persistence.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/psousa50/codenames50-sub000/internal/game"
	"github.com/psousa50/codenames50-sub000/internal/history"
	"github.com/psousa50/codenames50-sub000/internal/proto"
	"github.com/psousa50/codenames50-sub000/internal/realtime"
	"github.com/psousa50/codenames50-sub000/internal/store"
	"github.com/psousa50/codenames50-sub000/internal/words"
)

// Board dimensions for a standard match.
const (
	boardRows = 5
	boardCols = 5
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// createGameReq/Res payloads for POST /games.
type createGameReq struct {
	UserID string      `json:"userId"`
	Config game.Config `json:"config"`
}
type createGameRes struct {
	GameID string    `json:"gameId"`
	Game   game.Game `json:"game"`
}

// handleCreateGame creates an idle match with the caller as its first
// roster member.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Config.Variant == "" {
		req.Config.Variant = game.Classic
	}

	g := game.NewGame(uuid.NewString(), req.UserID, req.Config)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", g.ID).Str("userId", req.UserID).Msg("game created")
	_ = json.NewEncoder(w).Encode(createGameRes{GameID: g.ID, Game: g})
}

// handleGetGame returns the authoritative snapshot; this is also the
// client's drift-recovery path.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "gameID"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"gameNotFound"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(g)
}

// handleGameWS joins a user to a match room: adds them to the roster,
// sends the current snapshot, then pumps intents through the apply
// pipeline until the connection drops.
func (s *Server) handleGameWS(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error":"missing userId"}`, http.StatusBadRequest)
		return
	}
	if _, err := s.store.Get(r.Context(), gameID); err != nil {
		http.Error(w, `{"error":"gameNotFound"}`, http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade")
		return
	}
	c := realtime.NewClient(s.hub, conn, gameID, userID)

	// The snapshot is enqueued under the same lock as the join broadcast,
	// so everything the client receives afterwards postdates its snapshot.
	err = s.apply(context.Background(), gameID, userID, game.AddPlayer{UserID: userID}, func(g game.Game) {
		c.Send(proto.NewSnapshot(g))
	})
	if err != nil {
		c.Send(proto.NewError(err))
		c.Close()
		return
	}
	log.Info().Str("gameId", gameID).Str("userId", userID).Msg("player connected")

	c.Run(
		func(data []byte) { s.handleIntent(c, data) },
		func() { s.handleLeave(c) },
	)
}

// handleIntent decodes one client message and runs it through the
// authoritative path. Rejections go back to the sender only; applied
// actions are broadcast to the room.
func (s *Server) handleIntent(c *realtime.Client, data []byte) {
	var msg proto.ClientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.Send(proto.ErrorMsg{Type: "error", Code: "bad_json"})
		return
	}

	if msg.Type == "resync" {
		if g, err := s.store.Get(context.Background(), c.GameID); err == nil {
			c.Send(proto.NewSnapshot(g))
		}
		return
	}

	act, err := proto.ActionFromClient(c.UserID, msg, time.Now().UnixMilli())
	if err != nil {
		c.Send(proto.ErrorMsg{Type: "error", Code: "bad_message", Detail: err.Error()})
		return
	}

	if err := s.apply(context.Background(), c.GameID, c.UserID, act, nil); err != nil {
		c.Send(proto.NewError(err))
	}
}

// handleLeave shrinks the roster when a connection drops during setup.
// Mid-match the seat is kept so the player can reconnect without losing
// their team or spymaster slot.
func (s *Server) handleLeave(c *realtime.Client) {
	g, err := s.store.Get(context.Background(), c.GameID)
	if err != nil || g.State != game.Idle {
		return
	}
	if err := s.apply(context.Background(), c.GameID, c.UserID, game.RemovePlayer{UserID: c.UserID}, nil); err != nil {
		return
	}
	log.Info().Str("gameId", c.GameID).Str("userId", c.UserID).Msg("player left")
}

// apply is the single authoritative mutation path. It completes
// server-computed action arguments (board, team shuffle), validates,
// reduces, persists and, when the match just ended, records the result.
// The broadcast happens while the per-game lock is still held, so every
// client receives events in the exact order they were applied; onApplied
// (optional) also runs under the lock, with the new snapshot.
func (s *Server) apply(ctx context.Context, gameID, userID string, act game.Action, onApplied func(game.Game)) error {
	l := s.lockGame(gameID)
	ended := false
	defer func() { s.unlockGame(gameID, l, ended) }()

	g, err := s.store.Get(ctx, gameID)
	if err != nil {
		return err
	}

	act, err = s.completeAction(g, act)
	if err != nil {
		return err
	}

	next, err := game.Apply(g, act)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}

	if next.State == game.Ended && g.State != game.Ended {
		s.recordResult(ctx, next)
	}

	ev := proto.EventFor(gameID, userID, act)
	s.hub.Broadcast(gameID, &ev)
	if onApplied != nil {
		onApplied(next)
	}
	ended = next.State == game.Ended
	return nil
}

// completeAction fills in the arguments only the server can produce:
// the generated board for startGame and the shuffled assignment for
// randomizeTeams. The completed action is what gets broadcast, so every
// client replays the identical transition.
func (s *Server) completeAction(g game.Game, act game.Action) (game.Action, error) {
	switch a := act.(type) {
	case game.StartGame:
		if a.Board != nil {
			return a, nil
		}
		pool, err := words.WordsFor(a.Config.Language)
		if err != nil {
			return nil, err
		}
		a.Board = game.BuildBoard(boardCols, boardRows, pool)
		return a, nil
	case game.RandomizeTeams:
		if a.Assignments == nil {
			a.Assignments = game.RandomTeamAssignments(g.Players)
		}
		return a, nil
	}
	return act, nil
}

// recordResult writes the finished match into history. Best effort: a
// failed write is logged, never surfaced to the game flow.
func (s *Server) recordResult(ctx context.Context, g game.Game) {
	res := history.Result{
		GameID:  g.ID,
		Variant: string(g.Config.Variant),
		Winner:  string(g.Winner),
		EndedAt: time.Now().UTC(),
	}
	for _, p := range g.Players {
		res.Players = append(res.Players, history.PlayerResult{
			UserID: p.UserID,
			Team:   string(p.Team),
			Won:    g.Winner != game.NoTeam && p.Team == g.Winner,
		})
	}
	if err := s.history.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record match result")
	}
}

// RunTurnSweeper polls connected matches and forces the turn over when
// its budget is spent. The timeout itself is a pure engine query; the
// transition still rides the normal authoritative path.
func (s *Server) RunTurnSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UnixMilli()
			for _, gameID := range s.hub.GameIDs() {
				g, err := s.store.Get(ctx, gameID)
				if err != nil || !g.TurnExpired(now) {
					continue
				}
				if err := s.apply(ctx, gameID, "", game.ForceChangeTurn{Now: now}, nil); err != nil {
					continue
				}
				log.Debug().Str("gameId", gameID).Msg("turn timed out")
			}
		}
	}
}
