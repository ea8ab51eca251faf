package match

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/mine-games/mine/internal/database/round/model"
)

// Lookup tables keyed by player count.
var (
	saboteursByPlayers = []int{0, 0, 0, 1, 1, 2, 2, 3, 3, 3, 4}
	handSizeByPlayers  = []int{0, 0, 0, 6, 6, 6, 5, 5, 4, 4, 4}
)

// rewardDeck is the fixed multiset of gold tokens a builders' win draws from.
var rewardDeck = []int{3, 2, 2, 1, 1, 1, 2, 3, 1, 2}

// saboteurGold is the flat payout per saboteur when the saboteurs win,
// indexed by saboteur count (4 or more pays the same as 4).
var saboteurGold = []int{0, 4, 3, 2, 2}

// SaboteurCount returns how many hidden saboteurs a round with the given
// number of players gets.
func SaboteurCount(players int) int {
	if players >= len(saboteursByPlayers) {
		return saboteursByPlayers[len(saboteursByPlayers)-1]
	}
	return saboteursByPlayers[players]
}

// HandSize returns the cards dealt per player: fewer players, larger hands.
func HandSize(players int) int {
	if players >= len(handSizeByPlayers) {
		return handSizeByPlayers[len(handSizeByPlayers)-1]
	}
	return handSizeByPlayers[players]
}

// SaboteurGold returns the flat payout per saboteur for a saboteurs' win.
func SaboteurGold(saboteurs int) int {
	if saboteurs >= len(saboteurGold) {
		return saboteurGold[len(saboteurGold)-1]
	}
	return saboteurGold[saboteurs]
}

type deckEntry struct {
	count    int
	typ      model.CardType
	conns    model.Connections
	tools    []model.Tool
	imageRef string
}

var deckComposition = []deckEntry{
	// path shapes
	{5, model.CardPath, model.Conns(model.SideTop, model.SideRight, model.SideBottom, model.SideLeft), nil, "path-cross"},
	{4, model.CardPath, model.Conns(model.SideTop, model.SideBottom), nil, "path-vertical"},
	{3, model.CardPath, model.Conns(model.SideLeft, model.SideRight), nil, "path-horizontal"},
	{5, model.CardPath, model.Conns(model.SideTop, model.SideBottom, model.SideRight), nil, "path-t-east"},
	{5, model.CardPath, model.Conns(model.SideLeft, model.SideRight, model.SideBottom), nil, "path-t-south"},
	{4, model.CardPath, model.Conns(model.SideTop, model.SideRight), nil, "path-bend-ne"},
	{5, model.CardPath, model.Conns(model.SideBottom, model.SideRight), nil, "path-bend-se"},
	// dead ends
	{1, model.CardDeadend, model.Conns(model.SideTop), nil, "deadend-top"},
	{1, model.CardDeadend, model.Conns(model.SideRight), nil, "deadend-right"},
	{1, model.CardDeadend, model.Conns(model.SideBottom), nil, "deadend-bottom"},
	{1, model.CardDeadend, model.Conns(model.SideLeft), nil, "deadend-left"},
	{1, model.CardDeadend, model.Conns(model.SideTop, model.SideBottom), nil, "deadend-vertical"},
	{1, model.CardDeadend, model.Conns(model.SideLeft, model.SideRight), nil, "deadend-horizontal"},
	{1, model.CardDeadend, model.Conns(model.SideTop, model.SideRight), nil, "deadend-ne"},
	{1, model.CardDeadend, model.Conns(model.SideBottom, model.SideLeft), nil, "deadend-sw"},
	// tool sabotage and repair
	{3, model.CardBrokenTool, model.Connections{}, []model.Tool{model.ToolPickaxe}, "broken-pickaxe"},
	{3, model.CardBrokenTool, model.Connections{}, []model.Tool{model.ToolLantern}, "broken-lantern"},
	{3, model.CardBrokenTool, model.Connections{}, []model.Tool{model.ToolCart}, "broken-cart"},
	{2, model.CardRepairTool, model.Connections{}, []model.Tool{model.ToolPickaxe}, "repair-pickaxe"},
	{2, model.CardRepairTool, model.Connections{}, []model.Tool{model.ToolLantern}, "repair-lantern"},
	{2, model.CardRepairTool, model.Connections{}, []model.Tool{model.ToolCart}, "repair-cart"},
	{1, model.CardRepairDouble, model.Connections{}, []model.Tool{model.ToolPickaxe, model.ToolLantern}, "repair-pickaxe-lantern"},
	{1, model.CardRepairDouble, model.Connections{}, []model.Tool{model.ToolLantern, model.ToolCart}, "repair-lantern-cart"},
	{1, model.CardRepairDouble, model.Connections{}, []model.Tool{model.ToolPickaxe, model.ToolCart}, "repair-pickaxe-cart"},
	// actions
	{6, model.CardInspect, model.Connections{}, nil, "inspect"},
	{3, model.CardCollapse, model.Connections{}, nil, "collapse"},
}

// BuildActionDeck returns the fixed-composition, unshuffled action deck.
func BuildActionDeck() []model.Card {
	var deck []model.Card
	for _, entry := range deckComposition {
		for i := 0; i < entry.count; i++ {
			card := model.Card{
				ID:          uuid.NewString(),
				Type:        entry.typ,
				Connections: entry.conns,
				ImageRef:    entry.imageRef,
			}
			if len(entry.tools) > 0 {
				card.Tools = make([]model.Tool, len(entry.tools))
				copy(card.Tools, entry.tools)
			}
			deck = append(deck, card)
		}
	}
	return deck
}

// Shuffle returns a uniformly permuted copy; the input is left untouched.
func Shuffle(rnd *rand.Rand, cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ShuffleValues is Shuffle for gold token values.
func ShuffleValues(rnd *rand.Rand, values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// objectiveCells are the three fixed hidden cells of every round.
var objectiveCells = [3][2]int{{10, 2}, {10, 4}, {10, 6}}

// BuildObjectiveSet deals one treasure and two decoys onto the fixed
// objective cells; which cell hides the treasure is decided by rnd and is
// not otherwise observable.
func BuildObjectiveSet(rnd *rand.Rand) []model.ObjectiveCard {
	kinds := []model.ObjectiveKind{model.KindTreasure, model.KindDecoy, model.KindDecoy}
	rnd.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	out := make([]model.ObjectiveCard, 0, len(kinds))
	for i, kind := range kinds {
		out = append(out, model.ObjectiveCard{
			ID:   uuid.NewString(),
			Kind: kind,
			X:    objectiveCells[i][0],
			Y:    objectiveCells[i][1],
		})
	}
	return out
}
