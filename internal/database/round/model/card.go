package model

// Side indexes one edge of a card.
type Side uint8

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// Connections marks which edges of a card expose a path, indexed by Side.
type Connections [4]bool

// Reflected mirrors the card vertically and horizontally: TOP and BOTTOM
// swap, LEFT and RIGHT swap.
func (c Connections) Reflected() Connections {
	return Connections{c[SideBottom], c[SideLeft], c[SideTop], c[SideRight]}
}

func Conns(sides ...Side) Connections {
	var c Connections
	for _, s := range sides {
		c[s] = true
	}
	return c
}

type CardType uint8

const (
	CardPath CardType = iota + 1
	CardDeadend
	CardStart
	CardBrokenTool
	CardRepairTool
	CardRepairDouble
	CardInspect
	CardCollapse
	CardEndHidden
	CardEndRevealed
)

type Tool uint8

const (
	ToolPickaxe Tool = iota + 1
	ToolLantern
	ToolCart
)

// Card is immutable once dealt except for Mirrored, which the owner toggles
// before placement.
type Card struct {
	ID          string      `json:"id"`
	Type        CardType    `json:"type"`
	Connections Connections `json:"connections"`
	Tools       []Tool      `json:"tools"`
	ImageRef    string      `json:"imageRef"`
	Mirrored    bool        `json:"mirrored"`
}

// Open reports whether the card exposes a path on the given side, taking the
// Mirrored flag into account.
func (c Card) Open(s Side) bool {
	conns := c.Connections
	if c.Mirrored {
		conns = conns.Reflected()
	}
	return conns[s]
}

func (c Card) IsPathLike() bool {
	return c.Type == CardPath || c.Type == CardDeadend
}

func (c Card) IsEnd() bool {
	return c.Type == CardEndHidden || c.Type == CardEndRevealed
}

func (c Card) HasTool(t Tool) bool {
	for _, tool := range c.Tools {
		if tool == t {
			return true
		}
	}
	return false
}
