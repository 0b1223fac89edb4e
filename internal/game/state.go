// internal/game/state.go
//
// Core type definitions for the Codenames rules engine.
// Defines:
//   - Game: the root match snapshot and all of its sub-entities.
//   - Team / WordType / Variant / MatchState / TurnOutcome enums.
//   - Pure queries over a snapshot (player lookup, turn expiry, winner).
//
// The snapshot is a plain JSON-serializable record. Reducers in this
// package never mutate a snapshot in place: every transition copies what
// it changes and returns a new value, so the same reducer can run
// authoritatively on the server and predictively on every client.

package game

// Team is a player or card affiliation. The empty value means unassigned
// (for players) or no team (for turn/winner fields while not meaningful).
type Team string

const (
	NoTeam Team = ""
	Red    Team = "red"
	Blue   Team = "blue"
)

// Other returns the opposing team, or NoTeam for NoTeam.
func (t Team) Other() Team {
	switch t {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoTeam
}

// WordType is the hidden role of a board cell.
type WordType string

const (
	RedWord      WordType = "red"
	BlueWord     WordType = "blue"
	InnocentWord WordType = "innocent"
	AssassinWord WordType = "assassin"
)

// Team maps a team-colored word to its owning team, NoTeam otherwise.
func (w WordType) Team() Team {
	switch w {
	case RedWord:
		return Red
	case BlueWord:
		return Blue
	}
	return NoTeam
}

// Variant selects the rule set for a match.
type Variant string

const (
	Classic      Variant = "classic"
	Interception Variant = "interception"
)

// MatchState is the match-level state machine: idle -> running -> ended,
// with ended -> idle via restart.
type MatchState string

const (
	Idle    MatchState = "idle"
	Running MatchState = "running"
	Ended   MatchState = "ended"
)

// TurnOutcome records how the last reveal resolved, for UI and sound cues.
type TurnOutcome string

const (
	NoOutcome       TurnOutcome = ""
	OutcomeSuccess  TurnOutcome = "success"
	OutcomeFailure  TurnOutcome = "failure"
	OutcomeAssassin TurnOutcome = "assassin"
)

// Config is the match setup, replaced wholesale on each edit while idle.
type Config struct {
	Language       string  `json:"language"`
	TurnTimeoutSec int     `json:"turnTimeoutSec,omitempty"`
	Variant        Variant `json:"variant"`
}

// Player is a roster entry. Membership is keyed by UserID (unique).
type Player struct {
	UserID string `json:"userId"`
	Team   Team   `json:"team"`
}

// TeamInfo is per-team bookkeeping. WordsLeft is nil until a match
// starts; Score is always defined and reset to zero on restart.
type TeamInfo struct {
	SpyMaster string `json:"spyMaster,omitempty"`
	WordsLeft *int   `json:"wordsLeft,omitempty"`
	Score     int    `json:"score"`
}

// BoardWord is a single cell. Cells are flipped to Revealed, never
// removed or reordered.
type BoardWord struct {
	Word     string   `json:"word"`
	Type     WordType `json:"type"`
	Revealed bool     `json:"revealed"`
}

// Board is a grid of cells, indexed board[row][col].
type Board [][]BoardWord

// Game is the root snapshot for one match.
type Game struct {
	ID      string   `json:"gameId"`
	Config  Config   `json:"config"`
	Players []Player `json:"players"`

	RedTeam  TeamInfo `json:"redTeam"`
	BlueTeam TeamInfo `json:"blueTeam"`

	Board Board      `json:"board,omitempty"`
	State MatchState `json:"state"`

	Turn               Team        `json:"turn,omitempty"`
	TurnCount          int         `json:"turnCount"`
	TurnOutcome        TurnOutcome `json:"turnOutcome,omitempty"`
	HintWord           string      `json:"hintWord"`
	HintWordCount      int         `json:"hintWordCount"`
	WordsRevealedCount int         `json:"wordsRevealedCount"`

	TurnStartedTime int64 `json:"turnStartedTime,omitempty"` // epoch millis
	TurnTimeoutSec  int   `json:"turnTimeoutSec,omitempty"`

	InterceptPhase   bool `json:"interceptPhase"`
	InterceptUsed    bool `json:"interceptUsed"`
	InterceptingTeam Team `json:"interceptingTeam,omitempty"`

	Winner Team `json:"winner,omitempty"`
}

// NewGame creates an idle match with a single roster member.
func NewGame(id, userID string, config Config) Game {
	return Game{
		ID:      id,
		Config:  config,
		Players: []Player{{UserID: userID, Team: Red}},
		State:   Idle,
	}
}

// ----------------------------- queries -------------------------------------

// PlayerOf returns the roster entry for userID, if present.
func (g Game) PlayerOf(userID string) (Player, bool) {
	for _, p := range g.Players {
		if p.UserID == userID {
			return p, true
		}
	}
	return Player{}, false
}

// TeamOf returns the team userID currently plays on.
func (g Game) TeamOf(userID string) Team {
	p, ok := g.PlayerOf(userID)
	if !ok {
		return NoTeam
	}
	return p.Team
}

// Info returns the bookkeeping record for a team.
func (g Game) Info(t Team) TeamInfo {
	if t == Blue {
		return g.BlueTeam
	}
	return g.RedTeam
}

// IsSpyMaster reports whether userID holds either team's spymaster slot.
func (g Game) IsSpyMaster(userID string) bool {
	return userID != "" && (g.RedTeam.SpyMaster == userID || g.BlueTeam.SpyMaster == userID)
}

// TeamCount returns how many roster members are on team t.
func (g Game) TeamCount(t Team) int {
	n := 0
	for _, p := range g.Players {
		if p.Team == t {
			n++
		}
	}
	return n
}

// TurnExpired reports whether the current turn has exceeded its budget at
// wall-clock instant now (epoch millis). Pure query: an external scheduler
// polls it and, if true, applies ForceChangeTurn through the normal
// authoritative path.
func (g Game) TurnExpired(now int64) bool {
	if g.State != Running || g.TurnTimeoutSec <= 0 || g.TurnStartedTime <= 0 {
		return false
	}
	return now-g.TurnStartedTime > int64(g.TurnTimeoutSec)*1000
}

// ------------------------------ copying ------------------------------------

// clonePlayers copies the roster slice so reducers can edit it freely.
func clonePlayers(ps []Player) []Player {
	out := make([]Player, len(ps))
	copy(out, ps)
	return out
}

// cloneBoard deep-copies the grid. Row slices are copied so a single cell
// flip never leaks into the caller's snapshot.
func cloneBoard(b Board) Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = make([]BoardWord, len(row))
		copy(out[i], row)
	}
	return out
}

// intPtr returns a pointer to v, for the WordsLeft optional.
func intPtr(v int) *int { return &v }
