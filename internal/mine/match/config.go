package match

import (
	"math/rand"
	"time"

	"github.com/mine-games/mine/internal/mine/pubsub"
)

type Config struct {
	Code   string
	HostID string

	RoundsNum  int
	MinPlayers int
	MaxPlayers int

	Rooms     RoomStore
	Rounds    RoundStore
	Broadcast pubsub.Broadcaster

	// Rand drives every shuffle and role draw of the session; seed it in
	// tests for deterministic rounds.
	Rand *rand.Rand

	Timeout time.Duration
	DoneFn  func(session *Session) error
}
