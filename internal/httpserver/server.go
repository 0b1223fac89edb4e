// internal/httpserver/server.go
//
// HTTP server wiring for the Codenames backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/languages", "/leaderboard".
//   - Game endpoints: create match, fetch snapshot, websocket entry.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /matches/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The engine itself never appears in handlers directly; every
//     mutation goes through the apply pipeline in games.go, which
//     serializes per game id.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/psousa50/codenames50-sub000/internal/history"
	"github.com/psousa50/codenames50-sub000/internal/realtime"
	"github.com/psousa50/codenames50-sub000/internal/store"
	"github.com/psousa50/codenames50-sub000/internal/words"
)

// Server bundles router, snapshot store, DB handle, broadcast hub and
// match history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	db      *sql.DB
	hub     *realtime.Hub
	history *history.Store

	mu    sync.Mutex
	locks map[string]*gameLock // per-game apply serialization
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, hub *realtime.Hub) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		hub:     hub,
		history: history.NewStore(db),
		locks:   make(map[string]*gameLock),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// The websocket route stays outside the timeout group: a live room
	// connection has no request deadline.
	s.r.Get("/games/{gameID}/ws", s.handleGameWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(15 * time.Second))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"codenames-go","endpoints":["/health","POST /games","GET /games/{id}","GET /games/{id}/ws","/auth/*","/leaderboard"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/languages", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"languages": words.Languages()})
		})

		// Game endpoints (guests welcome; identity is the caller's userId)
		r.Post("/games", s.handleCreateGame)
		r.Get("/games/{gameID}", s.handleGetGame)

		// Leaderboard + daily activity
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/stats/today", s.handleToday)

		// Auth + profile/stats (require auth)
		s.mountAuthRoutes(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// gameLock serializes authoritative transitions for one game id: at most
// one apply in flight per match, different matches fully parallel. refs
// counts waiters plus the holder so eviction never races a live apply.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

// lockGame acquires the per-game lock, creating it on first use.
func (s *Server) lockGame(gameID string) *gameLock {
	s.mu.Lock()
	l := s.locks[gameID]
	if l == nil {
		l = &gameLock{}
		s.locks[gameID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

// unlockGame releases the per-game lock. When the match has ended and no
// other apply is waiting, the entry is dropped from the map; a restart
// simply recreates it on demand.
func (s *Server) unlockGame(gameID string, l *gameLock, ended bool) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 && ended {
		delete(s.locks, gameID)
	}
	s.mu.Unlock()
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.history.Leaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	n, err := s.history.PlayedOn(r.Context(), history.DateKey(time.Now()))
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]int{"matches": n})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
