// internal/game/board.go
//
// Board generation for a Codenames match.
// Responsibilities:
//   - Compute a fair role allotment: exactly one assassin, red and blue
//     counts differing by at most one (coin flip decides the extra),
//     innocents as the remainder.
//   - Shuffle the candidate pool and the role list independently with
//     uniform Fisher-Yates permutations, zip them, and slice into rows.
//
// Generation is intentionally non-deterministic: two calls with the same
// inputs yield different boards with overwhelming probability.

package game

import "math/rand"

// BuildBoard builds a width*height grid from the candidate word pool.
// A pool shorter than width*height shrinks the board to what is
// available; width*height = 0 returns an empty board.
func BuildBoard(width, height int, words []string) Board {
	n := width * height
	if n <= 0 || width <= 0 {
		return Board{}
	}
	if len(words) < n {
		n = len(words)
	}

	roles := rolesFor(n)
	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	pool := make([]string, len(words))
	copy(pool, words)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	pool = pool[:n]

	board := Board{}
	for i := 0; i < n; i += width {
		end := i + width
		if end > n {
			end = n
		}
		row := make([]BoardWord, 0, width)
		for j := i; j < end; j++ {
			row = append(row, BoardWord{Word: pool[j], Type: roles[j]})
		}
		board = append(board, row)
	}
	return board
}

// rolesFor computes the unshuffled role list for an n-cell board. The
// combined team allotment is 2*floor((n-1)/3)+1, which yields the classic
// 9/8/7/1 split on a 25-cell board; the odd extra goes to red or blue by
// unbiased coin flip.
func rolesFor(n int) []WordType {
	roles := make([]WordType, 0, n)
	if n == 0 {
		return roles
	}

	teamTotal := 2*((n-1)/3) + 1
	if teamTotal > n-1 {
		teamTotal = n - 1
	}
	red := teamTotal / 2
	blue := teamTotal / 2
	if teamTotal%2 == 1 {
		if rand.Intn(2) == 0 {
			red++
		} else {
			blue++
		}
	}

	roles = append(roles, AssassinWord)
	for i := 0; i < red; i++ {
		roles = append(roles, RedWord)
	}
	for i := 0; i < blue; i++ {
		roles = append(roles, BlueWord)
	}
	for len(roles) < n {
		roles = append(roles, InnocentWord)
	}
	return roles
}

// countType counts unrevealed-or-not cells of a given type. Used at match
// start to seed each team's WordsLeft.
func (b Board) countType(t WordType) int {
	n := 0
	for _, row := range b {
		for _, w := range row {
			if w.Type == t {
				n++
			}
		}
	}
	return n
}

// cellAt returns the cell, guarding against out-of-range coordinates.
func (b Board) cellAt(row, col int) (BoardWord, bool) {
	if row < 0 || row >= len(b) || col < 0 || col >= len(b[row]) {
		return BoardWord{}, false
	}
	return b[row][col], true
}

// hiddenOfTeam lists coordinates of still-hidden cells owned by team t,
// in row-major order.
func (b Board) hiddenOfTeam(t Team) [][2]int {
	var out [][2]int
	for r, row := range b {
		for c, w := range row {
			if !w.Revealed && w.Type.Team() == t {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}
