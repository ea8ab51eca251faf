package model

// Board dimensions and the fixed cells, row-major: Grid[y][x].
const (
	BoardWidth  = 13
	BoardHeight = 9

	StartX = 2
	StartY = 4
)

type ObjectiveKind uint8

const (
	KindTreasure ObjectiveKind = iota + 1
	KindDecoy
)

// ObjectiveCard is one of the three hidden cells; exactly one per round holds
// the treasure.
type ObjectiveCard struct {
	ID   string        `json:"id"`
	Kind ObjectiveKind `json:"kind"`
	X    int           `json:"x"`
	Y    int           `json:"y"`
}

type Board struct {
	Grid       [][]*Card       `json:"grid"`
	Start      Card            `json:"startCard"`
	Objectives []ObjectiveCard `json:"objectivePositions"`
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

func (b *Board) At(x, y int) *Card {
	if !b.InBounds(x, y) {
		return nil
	}
	return b.Grid[y][x]
}

func (b *Board) Set(x, y int, card *Card) {
	if b.InBounds(x, y) {
		b.Grid[y][x] = card
	}
}

// RoundPlayer is the per-round view of a room member.
type RoundPlayer struct {
	UserID          string          `json:"userId"`
	Hand            []Card          `json:"hand"`
	Malus           []Card          `json:"malus"`
	IsSaboteur      bool            `json:"isSaboteur"`
	HasToPlay       bool            `json:"hasToPlay"`
	HasToChooseGold bool            `json:"hasToChooseGold"`
	Revealed        []ObjectiveCard `json:"revealedObjectives"`
}

func (p *RoundPlayer) HasMalus() bool {
	return len(p.Malus) > 0
}

func (p *RoundPlayer) MalusTool(t Tool) bool {
	for _, card := range p.Malus {
		if card.HasTool(t) {
			return true
		}
	}
	return false
}

// InHand returns the index of the card with the given id, if held.
func (p *RoundPlayer) InHand(cardID string) (int, bool) {
	for i, card := range p.Hand {
		if card.ID == cardID {
			return i, true
		}
	}
	return 0, false
}

// Round is one playthrough of the path-building game within a room. Index 0
// is the pre-game lobby snapshot.
type Round struct {
	Index          int             `json:"index"`
	Board          Board           `json:"board"`
	Users          []*RoundPlayer  `json:"users"`
	Deck           []Card          `json:"deck"`
	Objectives     []ObjectiveCard `json:"objectiveCards"`
	GoldChoicePool []int           `json:"goldChoicePool"`
	Revealed       []ObjectiveCard `json:"revealedObjectives"`
}

func (r *Round) Player(userID string) (*RoundPlayer, bool) {
	for _, p := range r.Users {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

// UserIndex returns the position of a player in the turn order.
func (r *Round) UserIndex(userID string) (int, bool) {
	for i, p := range r.Users {
		if p.UserID == userID {
			return i, true
		}
	}
	return 0, false
}

// TurnIndex returns the index of the player holding the turn token.
func (r *Round) TurnIndex() (int, bool) {
	for i, p := range r.Users {
		if p.HasToPlay {
			return i, true
		}
	}
	return 0, false
}

// IsRevealed reports whether the objective at (x, y) is already face up.
func (r *Round) IsRevealed(x, y int) bool {
	for _, o := range r.Revealed {
		if o.X == x && o.Y == y {
			return true
		}
	}
	return false
}

// ObjectiveAt returns the objective card sitting at (x, y), if any.
func (r *Round) ObjectiveAt(x, y int) (ObjectiveCard, bool) {
	for _, o := range r.Objectives {
		if o.X == x && o.Y == y {
			return o, true
		}
	}
	return ObjectiveCard{}, false
}

// Move is the transient input for one player action; it is never persisted.
type Move struct {
	Card          Card   `json:"card"`
	X             *int   `json:"x,omitempty"`
	Y             *int   `json:"y,omitempty"`
	Discard       bool   `json:"discard,omitempty"`
	TargetUser    string `json:"targetUser,omitempty"`
	TargetedMalus *Card  `json:"targetedMalusCard,omitempty"`
}
