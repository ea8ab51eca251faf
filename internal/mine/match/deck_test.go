package match

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/mine-games/mine/internal/database/round/model"
)

func TestBuildActionDeckComposition(t *testing.T) {
	t.Parallel()

	deck := BuildActionDeck()
	if len(deck) != 66 {
		t.Fatalf("deck size: got %d, want 66", len(deck))
	}

	byType := map[model.CardType]int{}
	byTool := map[model.Tool]int{}
	for _, card := range deck {
		byType[card.Type]++
		if card.Type == model.CardBrokenTool {
			byTool[card.Tools[0]]++
		}
	}

	want := map[model.CardType]int{
		model.CardPath:         31,
		model.CardDeadend:      8,
		model.CardBrokenTool:   9,
		model.CardRepairTool:   6,
		model.CardRepairDouble: 3,
		model.CardInspect:      6,
		model.CardCollapse:     3,
	}
	for typ, n := range want {
		if byType[typ] != n {
			t.Errorf("type %d: got %d, want %d", typ, byType[typ], n)
		}
	}
	for _, tool := range []model.Tool{model.ToolPickaxe, model.ToolLantern, model.ToolCart} {
		if byTool[tool] != 3 {
			t.Errorf("broken tool %d: got %d, want 3", tool, byTool[tool])
		}
	}
}

func TestBuildActionDeckUniqueIDs(t *testing.T) {
	t.Parallel()

	deck := BuildActionDeck()
	seen := map[string]bool{}
	for _, card := range deck {
		if seen[card.ID] {
			t.Fatalf("duplicate card id %q", card.ID)
		}
		seen[card.ID] = true
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	deck := BuildActionDeck()
	before := make([]string, len(deck))
	for i, card := range deck {
		before[i] = card.ID
	}

	shuffled := Shuffle(rand.New(rand.NewSource(1)), deck)

	for i, card := range deck {
		if card.ID != before[i] {
			t.Fatalf("input deck mutated at index %d", i)
		}
	}

	moved := false
	for i := range deck {
		if shuffled[i].ID != deck[i].ID {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatalf("shuffle of %d cards left order unchanged", len(deck))
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	deck := BuildActionDeck()
	shuffled := Shuffle(rand.New(rand.NewSource(7)), deck)

	if len(shuffled) != len(deck) {
		t.Fatalf("length changed: got %d, want %d", len(shuffled), len(deck))
	}

	a := make([]string, len(deck))
	b := make([]string, len(deck))
	for i := range deck {
		a[i] = deck[i].ID
		b[i] = shuffled[i].ID
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffle is not a permutation: %q vs %q", a[i], b[i])
		}
	}
}

func TestBuildObjectiveSet(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		objectives := BuildObjectiveSet(rand.New(rand.NewSource(seed)))
		if len(objectives) != 3 {
			t.Fatalf("seed %d: got %d objectives, want 3", seed, len(objectives))
		}

		treasures := 0
		cells := map[[2]int]bool{}
		for _, obj := range objectives {
			if obj.Kind == model.KindTreasure {
				treasures++
			}
			cells[[2]int{obj.X, obj.Y}] = true
		}
		if treasures != 1 {
			t.Errorf("seed %d: got %d treasures, want 1", seed, treasures)
		}
		for _, cell := range objectiveCells {
			if !cells[[2]int{cell[0], cell[1]}] {
				t.Errorf("seed %d: cell (%d,%d) not covered", seed, cell[0], cell[1])
			}
		}
	}
}

func TestLookupTables(t *testing.T) {
	t.Parallel()

	cases := []struct {
		players   int
		saboteurs int
		hand      int
	}{
		{3, 1, 6},
		{4, 1, 6},
		{5, 2, 6},
		{6, 2, 5},
		{7, 3, 5},
		{8, 3, 4},
		{9, 3, 4},
		{10, 4, 4},
		{15, 4, 4},
	}
	for _, tc := range cases {
		if got := SaboteurCount(tc.players); got != tc.saboteurs {
			t.Errorf("SaboteurCount(%d): got %d, want %d", tc.players, got, tc.saboteurs)
		}
		if got := HandSize(tc.players); got != tc.hand {
			t.Errorf("HandSize(%d): got %d, want %d", tc.players, got, tc.hand)
		}
	}
}

func TestSaboteurGoldPayout(t *testing.T) {
	t.Parallel()

	cases := []struct{ saboteurs, gold int }{
		{1, 4},
		{2, 3},
		{3, 2},
		{4, 2},
		{6, 2},
	}
	for _, tc := range cases {
		if got := SaboteurGold(tc.saboteurs); got != tc.gold {
			t.Errorf("SaboteurGold(%d): got %d, want %d", tc.saboteurs, got, tc.gold)
		}
	}
}
