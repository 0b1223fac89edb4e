// internal/proto/mapping.go
//
// Translation between wire shapes and engine actions. Both directions
// are exhaustive switches over the closed action set, so a new action
// kind surfaces here as a compile-time or review-time gap, not a silent
// drop at runtime.

package proto

import (
	"fmt"

	"github.com/psousa50/codenames50-sub000/internal/game"
)

// Event type names, one per action kind.
const (
	EvPlayerAdded    = "playerAdded"
	EvPlayerRemoved  = "playerRemoved"
	EvTeamJoined     = "teamJoined"
	EvSpyMasterSet   = "spyMasterSet"
	EvTeamsShuffled  = "teamsRandomized"
	EvConfigUpdated  = "configUpdated"
	EvGameStarted    = "gameStarted"
	EvHintSent       = "hintSent"
	EvWordRevealed   = "wordRevealed"
	EvWordIntercept  = "wordIntercepted"
	EvTurnChanged    = "turnChanged"
	EvGameRestarted  = "gameRestarted"
)

// ActionFromClient maps a decoded intent to an engine action for userID
// at wall-clock instant now (epoch millis). startGame and randomizeTeams
// return incomplete actions on purpose: the server fills in the board or
// assignments before applying, since those are computed server-side.
func ActionFromClient(userID string, msg ClientMsg, now int64) (game.Action, error) {
	row, col := 0, 0
	if msg.Row != nil {
		row = *msg.Row
	}
	if msg.Col != nil {
		col = *msg.Col
	}

	switch msg.Type {
	case "joinTeam":
		return game.JoinTeam{UserID: userID, Team: msg.Team}, nil
	case "setSpyMaster":
		return game.SetSpyMaster{UserID: userID, Team: msg.Team}, nil
	case "randomizeTeams":
		return game.RandomizeTeams{}, nil
	case "updateConfig":
		if msg.Config == nil {
			return nil, fmt.Errorf("updateConfig: missing config")
		}
		return game.UpdateConfig{Config: *msg.Config}, nil
	case "startGame":
		if msg.Config == nil {
			return nil, fmt.Errorf("startGame: missing config")
		}
		return game.StartGame{Config: *msg.Config, Now: now}, nil
	case "sendHint":
		return game.SendHint{UserID: userID, Word: msg.HintWord, Count: msg.HintWordCount}, nil
	case "revealWord":
		return game.RevealWord{UserID: userID, Row: row, Col: col, Now: now}, nil
	case "interceptWord":
		return game.InterceptWord{UserID: userID, Row: row, Col: col, Now: now}, nil
	case "changeTurn":
		return game.ChangeTurn{UserID: userID, Now: now}, nil
	case "restartGame":
		return game.RestartGame{}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", msg.Type)
}

// EventFor encodes an applied action as the broadcast event for gameID.
func EventFor(gameID, userID string, a game.Action) Event {
	e := Event{GameID: gameID, UserID: userID}
	switch act := a.(type) {
	case game.AddPlayer:
		e.Type = EvPlayerAdded
		e.UserID = act.UserID
	case game.RemovePlayer:
		e.Type = EvPlayerRemoved
		e.UserID = act.UserID
	case game.JoinTeam:
		e.Type = EvTeamJoined
		e.Team = act.Team
	case game.SetSpyMaster:
		e.Type = EvSpyMasterSet
		e.Team = act.Team
	case game.RandomizeTeams:
		e.Type = EvTeamsShuffled
		e.Players = act.Assignments
	case game.UpdateConfig:
		e.Type = EvConfigUpdated
		cfg := act.Config
		e.Config = &cfg
	case game.StartGame:
		e.Type = EvGameStarted
		cfg := act.Config
		e.Config = &cfg
		e.Board = act.Board
		e.Now = act.Now
	case game.SendHint:
		e.Type = EvHintSent
		e.HintWord = act.Word
		e.HintWordCount = act.Count
	case game.RevealWord:
		e.Type = EvWordRevealed
		e.Row, e.Col = intP(act.Row), intP(act.Col)
		e.Now = act.Now
	case game.InterceptWord:
		e.Type = EvWordIntercept
		e.Row, e.Col = intP(act.Row), intP(act.Col)
		e.Now = act.Now
	case game.ChangeTurn:
		e.Type = EvTurnChanged
		e.Now = act.Now
	case game.ForceChangeTurn:
		e.Type = EvTurnChanged
		e.Now = act.Now
		e.Forced = true
	case game.RestartGame:
		e.Type = EvGameRestarted
	}
	return e
}

// ActionFromEvent is the client-side half of the replay model: rebuild
// the reducer arguments from a broadcast event.
func ActionFromEvent(e Event) (game.Action, bool) {
	row, col := 0, 0
	if e.Row != nil {
		row = *e.Row
	}
	if e.Col != nil {
		col = *e.Col
	}

	switch e.Type {
	case EvPlayerAdded:
		return game.AddPlayer{UserID: e.UserID}, true
	case EvPlayerRemoved:
		return game.RemovePlayer{UserID: e.UserID}, true
	case EvTeamJoined:
		return game.JoinTeam{UserID: e.UserID, Team: e.Team}, true
	case EvSpyMasterSet:
		return game.SetSpyMaster{UserID: e.UserID, Team: e.Team}, true
	case EvTeamsShuffled:
		return game.RandomizeTeams{Assignments: e.Players}, true
	case EvConfigUpdated:
		if e.Config == nil {
			return nil, false
		}
		return game.UpdateConfig{Config: *e.Config}, true
	case EvGameStarted:
		if e.Config == nil {
			return nil, false
		}
		return game.StartGame{Config: *e.Config, Board: e.Board, Now: e.Now}, true
	case EvHintSent:
		return game.SendHint{UserID: e.UserID, Word: e.HintWord, Count: e.HintWordCount}, true
	case EvWordRevealed:
		return game.RevealWord{UserID: e.UserID, Row: row, Col: col, Now: e.Now}, true
	case EvWordIntercept:
		return game.InterceptWord{UserID: e.UserID, Row: row, Col: col, Now: e.Now}, true
	case EvTurnChanged:
		if e.Forced {
			return game.ForceChangeTurn{Now: e.Now}, true
		}
		return game.ChangeTurn{UserID: e.UserID, Now: e.Now}, true
	case EvGameRestarted:
		return game.RestartGame{}, true
	}
	return nil, false
}

func intP(v int) *int { return &v }
