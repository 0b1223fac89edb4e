// internal/game/actions.go
//
// Action reducers: one pure function per action kind, mapping
// (snapshot, args) -> new snapshot. Reducers assume the matching
// validator already passed and never re-check.
//
// Composition primitive: a reducer folds an ordered list of conditional
// sub-actions over the snapshot. Each sub-action owns one concern
// (flip a cell, debit words-left, advance the turn, check the win
// condition) so concerns stay independently testable while the public
// reducer remains a single deterministic function.

package game

import "math/rand"

// subAction transforms a snapshot. Identity when its guard fails.
type subAction func(Game) Game

// chain folds sub-actions left to right.
func chain(subs ...subAction) subAction {
	return func(g Game) Game {
		for _, s := range subs {
			g = s(g)
		}
		return g
	}
}

// when applies sub iff pred holds for the snapshot at that point in the
// fold, identity otherwise.
func when(pred func(Game) bool, sub subAction) subAction {
	return func(g Game) Game {
		if pred(g) {
			return sub(g)
		}
		return g
	}
}

func running(g Game) bool { return g.State == Running }

// --------------------------- shared sub-actions ----------------------------

func flipCell(row, col int) subAction {
	return func(g Game) Game {
		if _, ok := g.Board.cellAt(row, col); !ok {
			return g
		}
		g.Board = cloneBoard(g.Board)
		g.Board[row][col].Revealed = true
		return g
	}
}

func addWordsLeft(g Game, t Team, delta int) Game {
	apply := func(info *TeamInfo) {
		if info.WordsLeft == nil {
			return
		}
		left := *info.WordsLeft + delta
		if left < 0 {
			left = 0
		}
		info.WordsLeft = intPtr(left)
	}
	if t == Blue {
		apply(&g.BlueTeam)
	} else if t == Red {
		apply(&g.RedTeam)
	}
	return g
}

func addScore(g Game, t Team, delta int) Game {
	if t == Blue {
		g.BlueTeam.Score += delta
	} else if t == Red {
		g.RedTeam.Score += delta
	}
	return g
}

func endGame(g Game, winner Team) Game {
	g.State = Ended
	g.Winner = winner
	g.InterceptPhase = false
	return g
}

// checkWin ends the match the instant either team's word count reaches
// zero; the variant table decides who the winner is.
func checkWin(g Game) Game {
	if g.State != Running {
		return g
	}
	redOut := g.RedTeam.WordsLeft != nil && *g.RedTeam.WordsLeft == 0
	blueOut := g.BlueTeam.WordsLeft != nil && *g.BlueTeam.WordsLeft == 0
	if !redOut && !blueOut {
		return g
	}
	return endGame(g, rulesFor(g.Config.Variant).winner(g))
}

// nextTurn flips the active team and resets per-turn bookkeeping. The
// turn timeout reverts to the configured value: the 60 second grace is
// added once at match start, not per turn.
func nextTurn(now int64) subAction {
	return func(g Game) Game {
		g.Turn = g.Turn.Other()
		g.TurnCount++
		g.HintWord = ""
		g.HintWordCount = 0
		g.WordsRevealedCount = 0
		g.InterceptPhase = false
		g.InterceptUsed = false
		g.InterceptingTeam = NoTeam
		g.TurnStartedTime = now
		g.TurnTimeoutSec = g.Config.TurnTimeoutSec
		return g
	}
}

// ----------------------------- setup actions -------------------------------

// balancedTeam picks the smaller team for a joining player, red on ties.
func balancedTeam(g Game) Team {
	if g.TeamCount(Blue) < g.TeamCount(Red) {
		return Blue
	}
	return Red
}

// AddPlayerAction appends a user to the roster. No-op when already
// present. A returning spymaster rejoins the team holding their slot;
// everyone else goes to whichever team keeps sizes balanced.
func AddPlayerAction(g Game, userID string) Game {
	if _, ok := g.PlayerOf(userID); ok {
		return g
	}
	team := balancedTeam(g)
	if g.RedTeam.SpyMaster == userID {
		team = Red
	} else if g.BlueTeam.SpyMaster == userID {
		team = Blue
	}
	g.Players = append(clonePlayers(g.Players), Player{UserID: userID, Team: team})
	return g
}

// RemovePlayerAction drops a user from the roster, vacating any
// spymaster slot they held.
func RemovePlayerAction(g Game, userID string) Game {
	players := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.UserID != userID {
			players = append(players, p)
		}
	}
	g.Players = players
	if g.RedTeam.SpyMaster == userID {
		g.RedTeam.SpyMaster = ""
	}
	if g.BlueTeam.SpyMaster == userID {
		g.BlueTeam.SpyMaster = ""
	}
	return g
}

// JoinTeamAction reassigns a player's team. Leaving a team vacates the
// spymaster slot the player held there.
func JoinTeamAction(g Game, userID string, team Team) Game {
	players := clonePlayers(g.Players)
	for i := range players {
		if players[i].UserID == userID {
			prev := players[i].Team
			players[i].Team = team
			g.Players = players
			if prev != team {
				g = clearSpyMasterIf(g, prev, userID)
			}
			return g
		}
	}
	return g
}

func clearSpyMasterIf(g Game, team Team, userID string) Game {
	if team == Red && g.RedTeam.SpyMaster == userID {
		g.RedTeam.SpyMaster = ""
	}
	if team == Blue && g.BlueTeam.SpyMaster == userID {
		g.BlueTeam.SpyMaster = ""
	}
	return g
}

// SetSpyMasterAction assigns the slot. The other team's slot is cleared
// if it pointed at the same user, and the player record follows the slot
// so a spymaster is always on the team they master.
func SetSpyMasterAction(g Game, userID string, team Team) Game {
	g = clearSpyMasterIf(g, team.Other(), userID)
	if team == Blue {
		g.BlueTeam.SpyMaster = userID
	} else {
		g.RedTeam.SpyMaster = userID
	}
	if p, ok := g.PlayerOf(userID); ok && p.Team != team {
		g = JoinTeamAction(g, userID, team)
	}
	return g
}

// RandomTeamAssignments shuffles the roster into two halves, extra member
// to red. Called outside the reducer so the result travels as the action
// argument and client replay stays deterministic.
func RandomTeamAssignments(players []Player) []Player {
	out := clonePlayers(players)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	cut := (len(out) + 1) / 2
	for i := range out {
		if i < cut {
			out[i].Team = Red
		} else {
			out[i].Team = Blue
		}
	}
	return out
}

// RandomizeTeamsAction installs a precomputed assignment, vacating any
// spymaster slot whose holder moved.
func RandomizeTeamsAction(g Game, assignments []Player) Game {
	g.Players = clonePlayers(assignments)
	if g.RedTeam.SpyMaster != "" && g.TeamOf(g.RedTeam.SpyMaster) != Red {
		g.RedTeam.SpyMaster = ""
	}
	if g.BlueTeam.SpyMaster != "" && g.TeamOf(g.BlueTeam.SpyMaster) != Blue {
		g.BlueTeam.SpyMaster = ""
	}
	return g
}

// UpdateConfigAction replaces the setup wholesale.
func UpdateConfigAction(g Game, config Config) Game {
	g.Config = config
	return g
}

// ---------------------------- match lifecycle ------------------------------

// StartGameAction moves idle -> running over a freshly generated board.
// WordsLeft seeds from the board's cell counts and the team with more
// cells opens (tie goes to blue). The turn timeout gets a one-time
// 60 second grace on top of the configured value.
func StartGameAction(g Game, config Config, board Board, now int64) Game {
	g.Config = config
	g.Board = board
	g.State = Running

	red := board.countType(RedWord)
	blue := board.countType(BlueWord)
	g.RedTeam.WordsLeft = intPtr(red)
	g.BlueTeam.WordsLeft = intPtr(blue)
	g.RedTeam.Score = 0
	g.BlueTeam.Score = 0

	g.Turn = Blue
	if red > blue {
		g.Turn = Red
	}

	g.TurnCount = 0
	g.TurnOutcome = NoOutcome
	g.HintWord = ""
	g.HintWordCount = 0
	g.WordsRevealedCount = 0
	g.InterceptPhase = false
	g.InterceptUsed = false
	g.InterceptingTeam = NoTeam
	g.Winner = NoTeam

	g.TurnStartedTime = now
	g.TurnTimeoutSec = 0
	if config.TurnTimeoutSec > 0 {
		g.TurnTimeoutSec = config.TurnTimeoutSec + 60
	}
	return g
}

// RestartGameAction returns an ended match to setup. Roster, team
// membership and spymaster assignments survive so a rematch does not
// require re-forming teams; everything match-scoped resets.
func RestartGameAction(g Game) Game {
	g.State = Idle
	g.Board = nil
	g.Turn = NoTeam
	g.TurnCount = 0
	g.TurnOutcome = NoOutcome
	g.HintWord = ""
	g.HintWordCount = 0
	g.WordsRevealedCount = 0
	g.TurnStartedTime = 0
	g.TurnTimeoutSec = 0
	g.InterceptPhase = false
	g.InterceptUsed = false
	g.InterceptingTeam = NoTeam
	g.Winner = NoTeam
	g.RedTeam.WordsLeft = nil
	g.BlueTeam.WordsLeft = nil
	g.RedTeam.Score = 0
	g.BlueTeam.Score = 0
	return g
}

// ------------------------------ turn cycle ---------------------------------

// SendHintAction stores the clue and opens the one-shot intercept window
// for the other team. Both variants open the window; they differ only in
// how an intercept resolves.
func SendHintAction(g Game, word string, count int) Game {
	g.HintWord = word
	g.HintWordCount = count
	g.WordsRevealedCount = 0
	g.TurnOutcome = NoOutcome
	g.InterceptPhase = true
	g.InterceptUsed = false
	g.InterceptingTeam = g.Turn.Other()
	return g
}

// RevealWordAction flips a cell for the acting field agent and resolves
// every consequence in order: outcome tag, assassin loss, words-left
// debit, variant scoring, guess budget, turn advance, win check.
func RevealWordAction(g Game, userID string, row, col int, now int64) Game {
	cell, ok := g.Board.cellAt(row, col)
	if !ok {
		return g
	}
	actor := g.TeamOf(userID)
	owner := cell.Type.Team()
	assassin := cell.Type == AssassinWord
	correct := !assassin && owner == actor

	outcome := OutcomeFailure
	if assassin {
		outcome = OutcomeAssassin
	} else if correct {
		outcome = OutcomeSuccess
	}

	steps := chain(
		flipCell(row, col),
		func(g Game) Game { g.TurnOutcome = outcome; return g },
		when(func(Game) bool { return assassin },
			func(g Game) Game { return endGame(g, actor.Other()) }),
		when(func(g Game) bool { return running(g) && owner != NoTeam },
			func(g Game) Game { return addWordsLeft(g, owner, -1) }),
		when(func(g Game) bool {
			return running(g) && owner != NoTeam && rulesFor(g.Config.Variant).scoreOnReveal
		},
			func(g Game) Game { return addScore(g, owner, 1) }),
		when(running,
			func(g Game) Game { g.WordsRevealedCount++; return g }),
		when(func(g Game) bool {
			return running(g) && (!correct || g.WordsRevealedCount >= g.HintWordCount+1)
		},
			nextTurn(now)),
		checkWin,
	)
	return steps(g)
}

// InterceptWordAction consumes the non-active team's one-shot guess and
// delegates resolution to the variant table. The seed travels with the
// broadcast event, keeping the classic penalty pick identical on every
// replaying site.
func InterceptWordAction(g Game, userID string, row, col int, seed int64) Game {
	if !g.InterceptPhase || g.InterceptUsed {
		return g
	}
	actor := g.TeamOf(userID)
	g.InterceptUsed = true
	g.InterceptPhase = false
	return rulesFor(g.Config.Variant).intercept(g, actor, row, col, seed)
}

// ChangeTurnAction is the voluntary end of turn by a field agent.
func ChangeTurnAction(g Game, now int64) Game {
	return when(running, nextTurn(now))(g)
}

// ForceChangeTurnAction is the scheduler-driven end of turn on timeout.
// Same transition, no acting player.
func ForceChangeTurnAction(g Game, now int64) Game {
	return when(running, nextTurn(now))(g)
}
