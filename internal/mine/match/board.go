package match

import (
	"github.com/google/uuid"

	"github.com/mine-games/mine/internal/database/round/model"
)

// neighbor offsets indexed by model.Side.
var sideOffsets = [4][2]int{
	{0, -1}, // top
	{1, 0},  // right
	{0, 1},  // bottom
	{-1, 0}, // left
}

// NewBoard builds a fresh board: the start card on its fixed cell with all
// four edges open, and a face-down end card on every objective cell.
func NewBoard(objectives []model.ObjectiveCard) model.Board {
	grid := make([][]*model.Card, model.BoardHeight)
	for y := range grid {
		grid[y] = make([]*model.Card, model.BoardWidth)
	}

	start := model.Card{
		ID:          uuid.NewString(),
		Type:        model.CardStart,
		Connections: model.Conns(model.SideTop, model.SideRight, model.SideBottom, model.SideLeft),
		ImageRef:    "start",
	}
	grid[model.StartY][model.StartX] = &start

	board := model.Board{
		Grid:       grid,
		Start:      start,
		Objectives: objectives,
	}

	for _, o := range objectives {
		end := model.Card{
			ID:          uuid.NewString(),
			Type:        model.CardEndHidden,
			Connections: model.Conns(model.SideTop, model.SideRight, model.SideBottom, model.SideLeft),
			ImageRef:    "end-hidden",
		}
		board.Set(o.X, o.Y, &end)
	}

	return board
}

// CanPlace decides whether card may legally occupy (x, y): the cell must be
// empty, at least one neighbor must be occupied, and every shared edge must
// agree in both directions. A one-sided link is illegal either way, which is
// what makes sealed dead ends snap together correctly.
func CanPlace(board *model.Board, card model.Card, x, y int) bool {
	if !board.InBounds(x, y) || board.At(x, y) != nil {
		return false
	}

	var neighbors int
	for side := model.SideTop; side <= model.SideLeft; side++ {
		nx, ny := x+sideOffsets[side][0], y+sideOffsets[side][1]
		neighbor := board.At(nx, ny)
		if neighbor == nil {
			continue
		}
		neighbors++

		if card.Open(side) != neighbor.Open(side.Opposite()) {
			return false
		}
	}

	return neighbors > 0
}

// CanDestroy reports whether the card at (x, y) may be collapsed. The start
// card and the objective cells are indestructible.
func CanDestroy(board *model.Board, x, y int) bool {
	card := board.At(x, y)
	if card == nil {
		return false
	}
	return card.Type != model.CardStart && !card.IsEnd()
}

// PathExists runs a breadth-first search from (fromX, fromY) to (toX, toY).
// An edge between adjacent cells exists iff both cards expose reciprocal
// connections toward each other, the same rule placement enforces.
func PathExists(board *model.Board, fromX, fromY, toX, toY int) bool {
	if board.At(fromX, fromY) == nil || board.At(toX, toY) == nil {
		return false
	}
	if fromX == toX && fromY == toY {
		return true
	}

	visited := make([]bool, model.BoardWidth*model.BoardHeight)
	visited[fromY*model.BoardWidth+fromX] = true
	queue := [][2]int{{fromX, fromY}}

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]

		card := board.At(cell[0], cell[1])
		for side := model.SideTop; side <= model.SideLeft; side++ {
			if !card.Open(side) {
				continue
			}

			nx, ny := cell[0]+sideOffsets[side][0], cell[1]+sideOffsets[side][1]
			neighbor := board.At(nx, ny)
			if neighbor == nil || !neighbor.Open(side.Opposite()) {
				continue
			}

			if nx == toX && ny == toY {
				return true
			}

			if idx := ny*model.BoardWidth + nx; !visited[idx] {
				visited[idx] = true
				queue = append(queue, [2]int{nx, ny})
			}
		}
	}

	return false
}
