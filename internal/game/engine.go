// internal/game/engine.go
//
// Engine facade: a sealed Action sum type plus exhaustive Validate and
// Reduce dispatch. Apply composes the two and is the only entry point the
// authoritative server uses. Clients replay broadcast events through
// Reduce directly, trusting the server's earlier validation, so a locally
// advanced snapshot is never re-validated.

package game

// Action is one user or scheduler intent against a match snapshot.
type Action interface{ isAction() }

type AddPlayer struct {
	UserID string
}

type RemovePlayer struct {
	UserID string
}

type JoinTeam struct {
	UserID string
	Team   Team
}

type SetSpyMaster struct {
	UserID string
	Team   Team
}

// RandomizeTeams carries the server-computed assignment so replaying the
// event on clients is deterministic.
type RandomizeTeams struct {
	Assignments []Player
}

type UpdateConfig struct {
	Config Config
}

// StartGame carries the generated board for the same reason.
type StartGame struct {
	Config Config
	Board  Board
	Now    int64
}

type SendHint struct {
	UserID string
	Word   string
	Count  int
}

type RevealWord struct {
	UserID string
	Row    int
	Col    int
	Now    int64
}

// InterceptWord's Now doubles as the seed for the classic penalty pick.
type InterceptWord struct {
	UserID string
	Row    int
	Col    int
	Now    int64
}

type ChangeTurn struct {
	UserID string
	Now    int64
}

type ForceChangeTurn struct {
	Now int64
}

type RestartGame struct{}

func (AddPlayer) isAction()       {}
func (RemovePlayer) isAction()    {}
func (JoinTeam) isAction()        {}
func (SetSpyMaster) isAction()    {}
func (RandomizeTeams) isAction()  {}
func (UpdateConfig) isAction()    {}
func (StartGame) isAction()       {}
func (SendHint) isAction()        {}
func (RevealWord) isAction()      {}
func (InterceptWord) isAction()   {}
func (ChangeTurn) isAction()      {}
func (ForceChangeTurn) isAction() {}
func (RestartGame) isAction()     {}

// Validate runs the matching rule check for the action. Roster edits have
// no preconditions and always pass.
func Validate(g Game, a Action) error {
	switch act := a.(type) {
	case SetSpyMaster:
		return ValidateSetSpyMaster(g, act.Team)
	case RandomizeTeams:
		return ValidateRandomizeTeams(g)
	case UpdateConfig:
		return ValidateUpdateConfig(g)
	case StartGame:
		return ValidateStartGame(g, act.Config)
	case SendHint:
		return ValidateSendHint(g, act.UserID, act.Count)
	case RevealWord:
		return ValidateRevealWord(g, act.UserID, act.Row, act.Col)
	case InterceptWord:
		return ValidateInterceptWord(g, act.UserID, act.Row, act.Col)
	case ChangeTurn:
		return ValidateChangeTurn(g, act.UserID)
	case ForceChangeTurn:
		return ValidateForceChangeTurn(g)
	}
	return nil
}

// Reduce runs the matching reducer. Callers on the authoritative path
// must have validated first.
func Reduce(g Game, a Action) Game {
	switch act := a.(type) {
	case AddPlayer:
		return AddPlayerAction(g, act.UserID)
	case RemovePlayer:
		return RemovePlayerAction(g, act.UserID)
	case JoinTeam:
		return JoinTeamAction(g, act.UserID, act.Team)
	case SetSpyMaster:
		return SetSpyMasterAction(g, act.UserID, act.Team)
	case RandomizeTeams:
		return RandomizeTeamsAction(g, act.Assignments)
	case UpdateConfig:
		return UpdateConfigAction(g, act.Config)
	case StartGame:
		return StartGameAction(g, act.Config, act.Board, act.Now)
	case SendHint:
		return SendHintAction(g, act.Word, act.Count)
	case RevealWord:
		return RevealWordAction(g, act.UserID, act.Row, act.Col, act.Now)
	case InterceptWord:
		return InterceptWordAction(g, act.UserID, act.Row, act.Col, act.Now)
	case ChangeTurn:
		return ChangeTurnAction(g, act.Now)
	case ForceChangeTurn:
		return ForceChangeTurnAction(g, act.Now)
	case RestartGame:
		return RestartGameAction(g)
	default:
		panic("game: unknown action type")
	}
}

// Apply validates then reduces. On rejection the snapshot is returned
// untouched alongside the ValidationError.
func Apply(g Game, a Action) (Game, error) {
	if err := Validate(g, a); err != nil {
		return g, err
	}
	return Reduce(g, a), nil
}
