package mine

import (
	roundModel "github.com/mine-games/mine/internal/database/round/model"
	"github.com/mine-games/mine/internal/mine/match"
)

// CommandType names the logical commands received from the transport.
type CommandType string

const (
	CommandJoinRoom   CommandType = "JOIN_ROOM"
	CommandLeaveRoom  CommandType = "LEAVE_ROOM"
	CommandStartGame  CommandType = "START_GAME"
	CommandPlay       CommandType = "PLAY"
	CommandChooseGold CommandType = "CHOOSE_GOLD"
	CommandChat       CommandType = "CHAT"
)

// Command is one decoded player request. JOIN_ROOM with an empty Room code
// creates a new room with the caller as host.
type Command struct {
	Type   CommandType      `json:"type"`
	Room   string           `json:"room,omitempty"`
	UserID string           `json:"userId"`
	Name   string           `json:"name,omitempty"`
	Move   *roundModel.Move `json:"move,omitempty"`
	Value  int              `json:"value,omitempty"`
	Text   string           `json:"text,omitempty"`
}

// Reply carries either a success payload or an opaque error string back to
// the transport; the engine never localizes.
type Reply struct {
	OK    bool   `json:"ok"`
	Room  string `json:"room,omitempty"`
	Error string `json:"error,omitempty"`
}

// Execute routes one command and folds its outcome into a Reply.
func (m *Manager) Execute(cmd Command) Reply {
	var err error
	room := cmd.Room

	switch cmd.Type {
	case CommandJoinRoom:
		if cmd.Room == "" {
			room, err = m.CreateRoom(cmd.UserID, cmd.Name)
		} else {
			err = m.JoinRoom(cmd.Room, cmd.UserID, cmd.Name)
		}
	case CommandLeaveRoom:
		err = m.LeaveRoom(cmd.UserID)
	case CommandStartGame:
		err = m.StartGame(cmd.UserID)
	case CommandPlay:
		if cmd.Move == nil {
			err = match.CardNotInHandErr
		} else {
			err = m.Play(cmd.UserID, *cmd.Move)
		}
	case CommandChooseGold:
		err = m.ChooseGold(cmd.UserID, cmd.Value)
	case CommandChat:
		err = m.Chat(cmd.UserID, cmd.Text)
	default:
		err = match.RoomNotFoundErr
	}

	if err != nil {
		return Reply{Error: err.Error()}
	}

	return Reply{OK: true, Room: room}
}
