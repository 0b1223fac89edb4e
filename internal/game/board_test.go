package game

import "testing"

func TestBuildBoard_Dimensions(t *testing.T) {
	words := wordPool(40)
	b := BuildBoard(5, 5, words)
	if len(b) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(b))
	}
	for i, row := range b {
		if len(row) != 5 {
			t.Fatalf("row %d: expected 5 cells, got %d", i, len(row))
		}
	}
}

func TestBuildBoard_RoleAllotment(t *testing.T) {
	// The allotment is randomized but its counts are fixed: run a few
	// boards and check the invariants hold on each.
	words := wordPool(40)
	for i := 0; i < 20; i++ {
		b := BuildBoard(5, 5, words)

		if n := b.countType(AssassinWord); n != 1 {
			t.Fatalf("expected exactly 1 assassin, got %d", n)
		}
		red := b.countType(RedWord)
		blue := b.countType(BlueWord)
		if red+blue != 17 {
			t.Fatalf("expected 17 team words on a 25-cell board, got %d", red+blue)
		}
		diff := red - blue
		if diff < -1 || diff > 1 {
			t.Fatalf("team counts must differ by at most one, got red=%d blue=%d", red, blue)
		}
		if n := b.countType(InnocentWord); n != 7 {
			t.Fatalf("expected 7 innocents, got %d", n)
		}
	}
}

func TestBuildBoard_NoDuplicateWords(t *testing.T) {
	words := wordPool(30)
	b := BuildBoard(5, 5, words)
	seen := map[string]bool{}
	for _, row := range b {
		for _, w := range row {
			if seen[w.Word] {
				t.Fatalf("duplicate word on board: %q", w.Word)
			}
			seen[w.Word] = true
		}
	}
}

func TestBuildBoard_ShortPoolShrinks(t *testing.T) {
	b := BuildBoard(5, 5, wordPool(12))
	total := 0
	for _, row := range b {
		total += len(row)
	}
	if total != 12 {
		t.Fatalf("expected board to shrink to the 12 available words, got %d cells", total)
	}
	if n := b.countType(AssassinWord); n != 1 {
		t.Fatalf("shrunk board still needs 1 assassin, got %d", n)
	}
}

func TestBuildBoard_Empty(t *testing.T) {
	if b := BuildBoard(0, 5, wordPool(10)); len(b) != 0 {
		t.Fatalf("zero width must yield an empty board, got %d rows", len(b))
	}
	if b := BuildBoard(5, 5, nil); len(b) != 0 {
		t.Fatalf("empty pool must yield an empty board, got %d rows", len(b))
	}
}

func TestBuildBoard_DoesNotMutatePool(t *testing.T) {
	words := wordPool(30)
	before := make([]string, len(words))
	copy(before, words)
	_ = BuildBoard(5, 5, words)
	for i := range words {
		if words[i] != before[i] {
			t.Fatalf("pool mutated at index %d", i)
		}
	}
}

func wordPool(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "w" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	return out
}
