package pubsub

// EventType names the logical events the engine publishes to the transport.
type EventType string

const (
	EventMembers       EventType = "MEMBERS"
	EventBoard         EventType = "BOARD"
	EventCards         EventType = "CARDS"
	EventGameIsStarted EventType = "GAME_IS_STARTED"
	EventChat          EventType = "CHAT"
	EventRemoveUser    EventType = "REMOVE_USER"
)

// Event is one logical notification for a room. UserID narrows delivery to a
// single member (hands are private); empty means the whole room.
type Event struct {
	Room    string    `json:"room"`
	Type    EventType `json:"type"`
	UserID  string    `json:"userId,omitempty"`
	Payload any       `json:"payload"`
}

// Broadcaster delivers events to whatever transport sits outside the engine.
type Broadcaster interface {
	Publish(event Event)
}
