package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/psousa50/codenames50-sub000/internal/game"
	"github.com/psousa50/codenames50-sub000/internal/realtime"
	"github.com/psousa50/codenames50-sub000/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/0001_init.sql")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatal(err)
	}
	return New(store.NewMemoryStore(), db, realtime.NewHub())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthAndLanguages(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/languages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("languages: expected 200, got %d", rec.Code)
	}
	var out struct {
		Languages []string `json:"languages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Languages) == 0 {
		t.Fatalf("expected at least one language")
	}
}

func TestCreateAndFetchGame(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/games", map[string]any{
		"userId": "u1",
		"config": map[string]any{"language": "en"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var created createGameRes
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.GameID == "" {
		t.Fatalf("no game id returned")
	}
	if created.Game.State != game.Idle {
		t.Fatalf("new match must be idle, got %v", created.Game.State)
	}
	if created.Game.Config.Variant != game.Classic {
		t.Fatalf("variant must default to classic, got %v", created.Game.Config.Variant)
	}

	rec = doJSON(t, s, http.MethodGet, "/games/"+created.GameID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d", rec.Code)
	}
	var fetched game.Game
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.ID != created.GameID || fetched.TeamOf("u1") != game.Red {
		t.Fatalf("unexpected snapshot %+v", fetched)
	}
}

func TestFetchGame_NotFound(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s, http.MethodGet, "/games/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateGame_RejectsMissingUser(t *testing.T) {
	s := testServer(t)
	rec := doJSON(t, s, http.MethodPost, "/games", map[string]any{
		"config": map[string]any{"language": "en"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice", "password": "correcthorse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("signup must set the auth cookie")
	}

	// Duplicate username conflicts.
	rec = doJSON(t, s, http.MethodPost, "/auth/signup", map[string]string{
		"username": "alice", "password": "correcthorse",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate username, got %d", rec.Code)
	}

	// Wrong password is rejected.
	rec = doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice", "password": "wrongwrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on bad password, got %d", rec.Code)
	}

	// Login works and the cookie gates /auth/me.
	rec = doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice", "password": "correcthorse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	me := httptest.NewRecorder()
	s.Router().ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", me.Code)
	}

	// No cookie, no entry.
	bare := doJSON(t, s, http.MethodGet, "/auth/me", nil)
	if bare.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", bare.Code)
	}
}

func TestSignup_ValidationRules(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "correcthorse"},
		{"bad characters", "al ice", "correcthorse"},
		{"short password", "alice", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/auth/signup", map[string]string{
				"username": tt.username, "password": tt.password,
			})
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
