package mine

import (
	"strconv"

	"github.com/enescakir/emoji"

	roomModel "github.com/mine-games/mine/internal/database/room/model"
	"github.com/mine-games/mine/internal/database/round/model"
	"github.com/mine-games/mine/internal/strpool"
)

// RenderBoard draws the grid as emoji rows, one rune per cell.
func RenderBoard(board *model.Board) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	for y := 0; y < model.BoardHeight; y++ {
		for x := 0; x < model.BoardWidth; x++ {
			buf.WriteString(cellEmoji(board.At(x, y)))
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

func cellEmoji(card *model.Card) string {
	if card == nil {
		return emoji.WhiteLargeSquare.String()
	}

	switch card.Type {
	case model.CardStart:
		return emoji.Pick.String()
	case model.CardEndHidden:
		return emoji.QuestionMark.String()
	case model.CardEndRevealed:
		return emoji.GemStone.String()
	case model.CardDeadend:
		return emoji.CrossMark.String()
	default:
		return emoji.BlackLargeSquare.String()
	}
}

// RenderStandings lists room members with their gold totals, host first.
func RenderStandings(room *roomModel.Room) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString(emoji.Trophy.String())
	buf.WriteString(" standings\n")

	for _, p := range room.Public() {
		buf.WriteString(p.Name)
		if p.IsHost {
			buf.WriteString(" ")
			buf.WriteString(emoji.Crown.String())
		}
		buf.WriteString(" - ")
		buf.WriteString(strconv.Itoa(p.Gold))
		buf.WriteString(emoji.MoneyBag.String())
		buf.WriteByte('\n')
	}

	return buf.String()
}
