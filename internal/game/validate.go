// internal/game/validate.go
//
// Rule validation for every action kind.
// Responsibilities:
//   - One pure predicate per action, reading only the passed snapshot.
//   - A closed set of named ValidationError tags (no message formatting).
//   - Composition via short-circuiting conjunction (all) and, for the
//     set-spy-master case, disjunction over alternative legal contexts.
//
// Validators never mutate. The authoritative side runs the matching
// validator before the reducer; clients may call them to compute "is this
// action currently legal" for UI affordances.

package game

// ValidationError is a named rejection tag. The server layer maps it
// straight to a client-visible error response without invoking the
// reducer, so no partial mutation can exist.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrGameIsAlreadyRunning ValidationError = "gameIsAlreadyRunning"
	ErrGameIsNotRunning     ValidationError = "gameIsNotRunning"
	ErrNotPlayersTurn       ValidationError = "notPlayersTurn"
	ErrCantBeSpyMaster      ValidationError = "cantBeSpyMaster"
	ErrMustBeSpyMaster      ValidationError = "mustBeSpyMaster"
	ErrSpyMasterAlreadySet  ValidationError = "spyMasterAlreadySet"
	ErrMustHaveSpyMasters   ValidationError = "mustHaveSpyMasters"
	ErrMustHaveTwoPlayers   ValidationError = "mustHaveTwoPlayers"
	ErrNoHint               ValidationError = "noHint"
	ErrAlreadyHasHint       ValidationError = "alreadyHasHint"
	ErrMustGuessOnce        ValidationError = "mustGuessOnce"
	ErrTooMuchGuesses       ValidationError = "tooMuchGuesses"
	ErrAlreadyRevealed      ValidationError = "alreadyRevealed"
	ErrLanguageNotFound     ValidationError = "languageNotFound"
)

// rule checks one precondition against a snapshot; nil means ok.
type rule func(Game) error

// all short-circuits on the first failing rule.
func all(rules ...rule) rule {
	return func(g Game) error {
		for _, r := range rules {
			if err := r(g); err != nil {
				return err
			}
		}
		return nil
	}
}

// anyOf passes if any alternative passes; otherwise it reports the last
// alternative's failure, which is the most specific one by convention.
func anyOf(rules ...rule) rule {
	return func(g Game) error {
		var err error
		for _, r := range rules {
			if err = r(g); err == nil {
				return nil
			}
		}
		return err
	}
}

// ------------------------------ atoms --------------------------------------

func gameIsIdle(g Game) error {
	if g.State != Idle {
		return ErrGameIsAlreadyRunning
	}
	return nil
}

func gameIsRunning(g Game) error {
	if g.State != Running {
		return ErrGameIsNotRunning
	}
	return nil
}

func playersTurn(userID string) rule {
	return func(g Game) error {
		if g.TeamOf(userID) != g.Turn {
			return ErrNotPlayersTurn
		}
		return nil
	}
}

func notSpyMaster(userID string) rule {
	return func(g Game) error {
		if g.IsSpyMaster(userID) {
			return ErrCantBeSpyMaster
		}
		return nil
	}
}

func hasHint(g Game) error {
	if g.HintWordCount == 0 {
		return ErrNoHint
	}
	return nil
}

func cellHidden(row, col int) rule {
	return func(g Game) error {
		w, ok := g.Board.cellAt(row, col)
		if !ok || w.Revealed {
			return ErrAlreadyRevealed
		}
		return nil
	}
}

// -------------------------- per-action validators --------------------------

// ValidateSetSpyMaster allows the assignment while the game is idle, or
// while it is running if that team's slot is still empty.
func ValidateSetSpyMaster(g Game, team Team) error {
	slotEmpty := func(g Game) error {
		if g.Info(team).SpyMaster != "" {
			return ErrSpyMasterAlreadySet
		}
		return nil
	}
	return anyOf(
		gameIsIdle,
		all(gameIsRunning, slotEmpty),
	)(g)
}

// ValidateStartGame gates the idle -> running transition.
func ValidateStartGame(g Game, config Config) error {
	return all(
		gameIsIdle,
		func(g Game) error {
			if g.RedTeam.SpyMaster == "" || g.BlueTeam.SpyMaster == "" {
				return ErrMustHaveSpyMasters
			}
			return nil
		},
		func(g Game) error {
			if g.TeamCount(Red) < 2 || g.TeamCount(Blue) < 2 {
				return ErrMustHaveTwoPlayers
			}
			return nil
		},
		func(Game) error {
			if config.Language == "" {
				return ErrLanguageNotFound
			}
			return nil
		},
	)(g)
}

// ValidateSendHint requires the on-turn spymaster, no active clue, and a
// positive guess count. A zero count would open the intercept window with
// no clue behind it and leave the active team unable to guess.
func ValidateSendHint(g Game, userID string, count int) error {
	return all(
		gameIsRunning,
		playersTurn(userID),
		func(Game) error {
			if count < 1 {
				return ErrNoHint
			}
			return nil
		},
		func(g Game) error {
			if g.HintWordCount > 0 {
				return ErrAlreadyHasHint
			}
			return nil
		},
		func(g Game) error {
			if !g.IsSpyMaster(userID) {
				return ErrMustBeSpyMaster
			}
			return nil
		},
	)(g)
}

// ValidateChangeTurn requires an on-turn field agent who has guessed at
// least once against the active clue.
func ValidateChangeTurn(g Game, userID string) error {
	return all(
		gameIsRunning,
		hasHint,
		playersTurn(userID),
		notSpyMaster(userID),
		func(g Game) error {
			if g.WordsRevealedCount < 1 {
				return ErrMustGuessOnce
			}
			return nil
		},
	)(g)
}

// ValidateRevealWord gates a guess by an on-turn field agent.
func ValidateRevealWord(g Game, userID string, row, col int) error {
	return all(
		gameIsRunning,
		playersTurn(userID),
		notSpyMaster(userID),
		hasHint,
		func(g Game) error {
			if g.WordsRevealedCount >= g.HintWordCount+1 {
				return ErrTooMuchGuesses
			}
			return nil
		},
		cellHidden(row, col),
	)(g)
}

// ValidateInterceptWord gates the one-shot guess by the non-active team
// against the active team's clue. The window opens when a hint is sent
// and closes once used or when the turn changes.
func ValidateInterceptWord(g Game, userID string, row, col int) error {
	return all(
		gameIsRunning,
		func(g Game) error {
			if !g.InterceptPhase {
				return ErrNoHint
			}
			return nil
		},
		func(g Game) error {
			if g.InterceptUsed {
				return ErrTooMuchGuesses
			}
			return nil
		},
		func(g Game) error {
			if g.TeamOf(userID) != g.InterceptingTeam {
				return ErrNotPlayersTurn
			}
			return nil
		},
		notSpyMaster(userID),
		cellHidden(row, col),
	)(g)
}

// ValidateRandomizeTeams only applies during setup.
func ValidateRandomizeTeams(g Game) error { return gameIsIdle(g) }

// ValidateUpdateConfig only applies during setup.
func ValidateUpdateConfig(g Game) error { return gameIsIdle(g) }

// ValidateForceChangeTurn gates the scheduler-driven timeout path.
func ValidateForceChangeTurn(g Game) error { return gameIsRunning(g) }
