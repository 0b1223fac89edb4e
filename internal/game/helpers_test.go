package game

// Shared fixtures for the engine tests. Boards are built by hand so
// every assertion knows exactly which cell carries which role.

// testBoard lays out a 2x4 grid:
//
//	row 0: red red blue assassin
//	row 1: blue innocent red innocent
func testBoard() Board {
	return Board{
		{
			{Word: "apple", Type: RedWord},
			{Word: "river", Type: RedWord},
			{Word: "stone", Type: BlueWord},
			{Word: "ghost", Type: AssassinWord},
		},
		{
			{Word: "cloud", Type: BlueWord},
			{Word: "chair", Type: InnocentWord},
			{Word: "piano", Type: RedWord},
			{Word: "mirror", Type: InnocentWord},
		},
	}
}

// lobbyGame returns an idle match with two full teams and both
// spymaster slots held. r1 and b1 are the spymasters.
func lobbyGame(variant Variant) Game {
	g := NewGame("g1", "r1", Config{Language: "en", Variant: variant})
	g = AddPlayerAction(g, "r2")
	g = AddPlayerAction(g, "b1")
	g = AddPlayerAction(g, "b2")
	g = JoinTeamAction(g, "r2", Red)
	g = JoinTeamAction(g, "b1", Blue)
	g = JoinTeamAction(g, "b2", Blue)
	g = SetSpyMasterAction(g, "r1", Red)
	g = SetSpyMasterAction(g, "b1", Blue)
	return g
}

// runningGame starts a lobbyGame over testBoard. Red has 3 cells, blue
// has 2, so red opens.
func runningGame(variant Variant) Game {
	g := lobbyGame(variant)
	return StartGameAction(g, g.Config, testBoard(), 1000)
}

// withHint puts a running game mid-turn with an active clue for the
// on-turn team's field agents.
func withHint(g Game, word string, count int) Game {
	return SendHintAction(g, word, count)
}

func wordsLeft(g Game, t Team) int {
	info := g.Info(t)
	if info.WordsLeft == nil {
		return -1
	}
	return *info.WordsLeft
}
