package model

import "time"

// RoomPlayer is the persistent, round-independent view of a room member.
type RoomPlayer struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Message is one chat entry in the room log.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Room outlives rounds; GoldPool holds per-player gold totals aligned with
// the Users order.
type Room struct {
	Code         string       `json:"code"`
	HostID       string       `json:"host"`
	Users        []RoomPlayer `json:"users"`
	Started      bool         `json:"started"`
	CurrentRound int          `json:"currentRoundIndex"`
	GoldPool     []int        `json:"goldPool"`
	Chat         []Message    `json:"chatLog"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (r *Room) Player(userID string) (RoomPlayer, bool) {
	for _, p := range r.Users {
		if p.UserID == userID {
			return p, true
		}
	}
	return RoomPlayer{}, false
}

func (r *Room) PlayerIndex(userID string) (int, bool) {
	for i, p := range r.Users {
		if p.UserID == userID {
			return i, true
		}
	}
	return 0, false
}

// PlayerPublic is the projection of a member broadcast in MEMBERS events.
type PlayerPublic struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Gold   int    `json:"gold"`
	IsHost bool   `json:"isHost"`
}

func (r *Room) Public() []PlayerPublic {
	out := make([]PlayerPublic, 0, len(r.Users))
	for i, p := range r.Users {
		gold := 0
		if i < len(r.GoldPool) {
			gold = r.GoldPool[i]
		}
		out = append(out, PlayerPublic{
			UserID: p.UserID,
			Name:   p.Name,
			Gold:   gold,
			IsHost: p.UserID == r.HostID,
		})
	}
	return out
}
