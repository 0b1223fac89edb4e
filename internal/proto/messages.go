// internal/proto/messages.go
//
// Wire shapes for the realtime layer.
//
// Client intents and server events mirror the engine's action kinds
// one-for-one. An event carries exactly the arguments the matching
// reducer needs, never a precomputed snapshot, so server and clients
// independently derive identical state from identical inputs.

package proto

import "github.com/psousa50/codenames50-sub000/internal/game"

// ---- Client -> Server ----

// ClientMsg is one user intent. Type selects the action; the remaining
// fields are that action's arguments. The acting user comes from the
// connection, never from the message.
type ClientMsg struct {
	Type          string       `json:"type"` // "joinTeam" | "setSpyMaster" | "randomizeTeams" | "updateConfig" | "startGame" | "sendHint" | "revealWord" | "interceptWord" | "changeTurn" | "restartGame"
	Team          game.Team    `json:"team,omitempty"`
	Config        *game.Config `json:"config,omitempty"`
	HintWord      string       `json:"hintWord,omitempty"`
	HintWordCount int          `json:"hintWordCount,omitempty"`
	Row           *int         `json:"row,omitempty"`
	Col           *int         `json:"col,omitempty"`
}

// ---- Server -> Client ----

// Event is one applied action, broadcast to every participant in the
// room. Clients feed it back through the reducer against their local
// snapshot copy.
type Event struct {
	Type   string `json:"type"`
	GameID string `json:"gameId"`
	UserID string `json:"userId,omitempty"`

	Team          game.Team     `json:"team,omitempty"`
	Config        *game.Config  `json:"config,omitempty"`
	Board         game.Board    `json:"board,omitempty"`
	Players       []game.Player `json:"players,omitempty"`
	HintWord      string        `json:"hintWord,omitempty"`
	HintWordCount int           `json:"hintWordCount,omitempty"`
	Row           *int          `json:"row,omitempty"`
	Col           *int          `json:"col,omitempty"`
	Now           int64         `json:"now,omitempty"`
	Forced        bool          `json:"forced,omitempty"`
}

// SnapshotMsg carries the full authoritative snapshot. Sent to a client
// on connect and whenever it asks to resync after drifting.
type SnapshotMsg struct {
	Type string    `json:"type"` // "gameState"
	Game game.Game `json:"game"`
}

// NewSnapshot wraps a snapshot for the wire.
func NewSnapshot(g game.Game) SnapshotMsg {
	return SnapshotMsg{Type: "gameState", Game: g}
}

// ErrorMsg reports a rejected intent back to its sender only.
type ErrorMsg struct {
	Type   string `json:"type"` // "error"
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// NewError builds an ErrorMsg from a validation or boundary error.
func NewError(err error) ErrorMsg {
	return ErrorMsg{Type: "error", Code: err.Error()}
}
