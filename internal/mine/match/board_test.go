package match

import (
	"math/rand"
	"testing"

	"github.com/mine-games/mine/internal/database/round/model"
)

func testBoard(t *testing.T) model.Board {
	t.Helper()
	return NewBoard(BuildObjectiveSet(rand.New(rand.NewSource(1))))
}

func pathCard(sides ...model.Side) model.Card {
	return model.Card{ID: "test-path", Type: model.CardPath, Connections: model.Conns(sides...)}
}

func TestNewBoardLayout(t *testing.T) {
	t.Parallel()

	board := testBoard(t)

	start := board.At(model.StartX, model.StartY)
	if start == nil || start.Type != model.CardStart {
		t.Fatalf("start cell (%d,%d) holds %v", model.StartX, model.StartY, start)
	}
	for side := model.SideTop; side <= model.SideLeft; side++ {
		if !start.Open(side) {
			t.Errorf("start card side %d should be open", side)
		}
	}

	for _, cell := range objectiveCells {
		card := board.At(cell[0], cell[1])
		if card == nil || card.Type != model.CardEndHidden {
			t.Errorf("objective cell (%d,%d) holds %v", cell[0], cell[1], card)
		}
	}
}

func TestCanPlaceRequiresNeighbor(t *testing.T) {
	t.Parallel()

	board := testBoard(t)
	cross := pathCard(model.SideTop, model.SideRight, model.SideBottom, model.SideLeft)

	// A lone cell far from any card never accepts a placement.
	if CanPlace(&board, cross, 6, 0) {
		t.Errorf("placement without neighbors should fail")
	}
	// Adjacent to the start card, the same shape fits.
	if !CanPlace(&board, cross, model.StartX+1, model.StartY) {
		t.Errorf("placement next to the start card should succeed")
	}
}

func TestCanPlaceRejectsOccupiedAndOutOfBounds(t *testing.T) {
	t.Parallel()

	board := testBoard(t)
	cross := pathCard(model.SideTop, model.SideRight, model.SideBottom, model.SideLeft)

	if CanPlace(&board, cross, model.StartX, model.StartY) {
		t.Errorf("occupied cell should reject placement")
	}
	if CanPlace(&board, cross, -1, 0) || CanPlace(&board, cross, model.BoardWidth, 0) {
		t.Errorf("out-of-bounds cell should reject placement")
	}
}

func TestCanPlaceEdgeAgreementIsTwoSided(t *testing.T) {
	t.Parallel()

	board := testBoard(t)

	// The start card opens to the right; a card whose left edge is sealed
	// would create a one-sided link and must be rejected.
	sealed := pathCard(model.SideTop, model.SideRight)
	if CanPlace(&board, sealed, model.StartX+1, model.StartY) {
		t.Errorf("one-sided link toward the start card should fail")
	}

	open := pathCard(model.SideLeft, model.SideRight)
	if !CanPlace(&board, open, model.StartX+1, model.StartY) {
		t.Errorf("reciprocal link toward the start card should succeed")
	}
}

func TestCanPlaceHonorsMirroredEdges(t *testing.T) {
	t.Parallel()

	board := testBoard(t)

	bend := pathCard(model.SideTop, model.SideRight)
	bend.Mirrored = true
	// Mirrored, the bend opens bottom+left, so its left edge now faces the
	// start card's open right edge and the bottom edge has no neighbor.
	if !CanPlace(&board, bend, model.StartX+1, model.StartY) {
		t.Errorf("mirrored bend should fit at (%d,%d)", model.StartX+1, model.StartY)
	}
	bend.Mirrored = false
	if CanPlace(&board, bend, model.StartX+1, model.StartY) {
		t.Errorf("unmirrored bend seals its left edge and should not fit")
	}
}

func TestCanDestroy(t *testing.T) {
	t.Parallel()

	board := testBoard(t)
	card := pathCard(model.SideLeft, model.SideRight)
	board.Set(model.StartX+1, model.StartY, &card)

	if CanDestroy(&board, model.StartX, model.StartY) {
		t.Errorf("start card must not be destroyable")
	}
	for _, cell := range objectiveCells {
		if CanDestroy(&board, cell[0], cell[1]) {
			t.Errorf("objective card at (%d,%d) must not be destroyable", cell[0], cell[1])
		}
	}
	if CanDestroy(&board, 0, 0) {
		t.Errorf("empty cell must not be destroyable")
	}
	if !CanDestroy(&board, model.StartX+1, model.StartY) {
		t.Errorf("plain path card should be destroyable")
	}
}

func TestPathExistsFollowsChain(t *testing.T) {
	t.Parallel()

	board := testBoard(t)

	// Lay a horizontal corridor from the start toward x=6.
	for x := model.StartX + 1; x <= 6; x++ {
		card := pathCard(model.SideLeft, model.SideRight)
		card.ID = "seg"
		board.Set(x, model.StartY, &card)
	}

	if !PathExists(&board, model.StartX, model.StartY, 6, model.StartY) {
		t.Fatalf("corridor should connect start to (6,%d)", model.StartY)
	}

	// Sever the middle and the route must disappear.
	board.Set(4, model.StartY, nil)
	if PathExists(&board, model.StartX, model.StartY, 6, model.StartY) {
		t.Fatalf("severed corridor should not connect")
	}
}

func TestPathExistsIgnoresOneSidedLinks(t *testing.T) {
	t.Parallel()

	board := testBoard(t)

	// A dead end open only to the left touches the start but nothing beyond
	// it: the cell after the dead end is unreachable even when adjacent.
	deadend := model.Card{ID: "de", Type: model.CardDeadend, Connections: model.Conns(model.SideLeft)}
	board.Set(model.StartX+1, model.StartY, &deadend)
	next := pathCard(model.SideLeft, model.SideRight)
	board.Set(model.StartX+2, model.StartY, &next)

	if !PathExists(&board, model.StartX, model.StartY, model.StartX+1, model.StartY) {
		t.Fatalf("dead end should still be reachable from the start")
	}
	if PathExists(&board, model.StartX, model.StartY, model.StartX+2, model.StartY) {
		t.Fatalf("cell behind a sealed edge should be unreachable")
	}
}

func TestPathExistsSameCell(t *testing.T) {
	t.Parallel()

	board := testBoard(t)
	if !PathExists(&board, model.StartX, model.StartY, model.StartX, model.StartY) {
		t.Fatalf("a cell should be connected to itself")
	}
	if PathExists(&board, 0, 0, 0, 0) {
		t.Fatalf("an empty cell is not connected to anything")
	}
}
