// internal/game/variant.go
//
// The single place where the classic and interception rule sets diverge.
// Everything else in the reducer layer is shared; reducers consult this
// table instead of branching on the variant inline.

package game

import "math/rand"

// variantRules captures the behavior that differs between variants:
// whether reveals accumulate score, how an intercept resolves, and who
// wins once a team's word count reaches zero.
type variantRules struct {
	scoreOnReveal bool
	intercept     func(g Game, actor Team, row, col int, seed int64) Game
	winner        func(g Game) Team
}

func rulesFor(v Variant) variantRules {
	if v == Interception {
		return variantRules{
			scoreOnReveal: true,
			intercept:     interceptionIntercept,
			winner:        winnerByScore,
		}
	}
	return variantRules{
		scoreOnReveal: false,
		intercept:     classicIntercept,
		winner:        winnerByExhaustion,
	}
}

// winnerByExhaustion declares the team that revealed all its words.
func winnerByExhaustion(g Game) Team {
	if left := g.RedTeam.WordsLeft; left != nil && *left == 0 {
		return Red
	}
	if left := g.BlueTeam.WordsLeft; left != nil && *left == 0 {
		return Blue
	}
	return NoTeam
}

// winnerByScore declares the higher-scoring team; a tie yields no winner.
func winnerByScore(g Game) Team {
	switch {
	case g.RedTeam.Score > g.BlueTeam.Score:
		return Red
	case g.BlueTeam.Score > g.RedTeam.Score:
		return Blue
	}
	return NoTeam
}

// classicIntercept resolves an intercept without exposing the guessed
// cell's true color. A correct guess advances the intercepting team's own
// progress; a wrong guess auto-reveals one of the active team's hidden
// words as a penalty. The penalty pick is drawn from a rand source seeded
// with the event timestamp, so every replaying site picks the same cell.
func classicIntercept(g Game, actor Team, row, col int, seed int64) Game {
	cell, ok := g.Board.cellAt(row, col)
	if !ok {
		return g
	}
	if cell.Type.Team() == actor {
		g = addWordsLeft(g, actor, -1)
		g.TurnOutcome = OutcomeSuccess
		return checkWin(g)
	}

	g.TurnOutcome = OutcomeFailure
	hidden := g.Board.hiddenOfTeam(g.Turn)
	if len(hidden) == 0 {
		return g
	}
	pick := hidden[rand.New(rand.NewSource(seed)).Intn(len(hidden))]
	g = flipCell(pick[0], pick[1])(g)
	g = addWordsLeft(g, g.Turn, -1)
	return checkWin(g)
}

// interceptionIntercept reveals the guessed cell for real: the assassin
// still ends the game outright, a team word always debits its owner, and
// the point goes to the intercepting team when correct or to the active
// team when not.
func interceptionIntercept(g Game, actor Team, row, col int, seed int64) Game {
	cell, ok := g.Board.cellAt(row, col)
	if !ok {
		return g
	}
	g = flipCell(row, col)(g)

	if cell.Type == AssassinWord {
		g.TurnOutcome = OutcomeAssassin
		return endGame(g, actor.Other())
	}

	owner := cell.Type.Team()
	if owner != NoTeam {
		g = addWordsLeft(g, owner, -1)
	}
	if owner == actor {
		g = addScore(g, actor, 1)
		g.TurnOutcome = OutcomeSuccess
	} else {
		g = addScore(g, actor.Other(), 1)
		g.TurnOutcome = OutcomeFailure
	}
	return checkWin(g)
}
