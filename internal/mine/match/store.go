package match

import (
	roomModel "github.com/mine-games/mine/internal/database/room/model"
	"github.com/mine-games/mine/internal/database/round/model"
)

// RoomStore is the key-value contract the engine consumes for room state.
// Reads return fully materialized snapshots; Set replaces named fields
// wholesale.
type RoomStore interface {
	Fetch(code string) (roomModel.Room, error)
	Store(room roomModel.Room) error
	Set(code string, fields map[string]any) error
	Exists(code string) (bool, error)
	Delete(code string) error
}

// RoundStore is the same contract for per-round snapshots.
type RoundStore interface {
	Fetch(code string, index int) (model.Round, error)
	Store(code string, round model.Round) error
	Set(code string, index int, fields map[string]any) error
	Exists(code string, index int) (bool, error)
}
