package match

import "fmt"

// Domain failures raised by the rules engine. The transport layer maps them
// to localized strings; the engine treats them as opaque reasons.
var (
	UserNotFoundErr         = fmt.Errorf("user not found")
	NotYourTurnErr          = fmt.Errorf("not your turn")
	CardNotInHandErr        = fmt.Errorf("card not in hand")
	CardCannotBePlacedErr   = fmt.Errorf("card cannot be placed")
	ToolAlreadyBrokenErr    = fmt.Errorf("tool already broken")
	ToolNotBrokenErr        = fmt.Errorf("tool not broken")
	CardNotBrokenToolErr    = fmt.Errorf("card is not a broken tool")
	CardCannotRepairToolErr = fmt.Errorf("card cannot repair this tool")
	RoomAlreadyStartedErr   = fmt.Errorf("room already started")
	RoomFullErr             = fmt.Errorf("room full")
	RoomBelowMinPlayersErr  = fmt.Errorf("room below minimum players")
	NotHostErr              = fmt.Errorf("not host")
	ItsGoldTimeErr          = fmt.Errorf("gold choice pending")
	NotChooseGoldTurnErr    = fmt.Errorf("not your gold choice turn")
	GoldValueUnavailableErr = fmt.Errorf("gold value unavailable")
	NoObjectiveCardAtPosErr = fmt.Errorf("no objective card at position")
	RoomNotFoundErr         = fmt.Errorf("room not found")
)
