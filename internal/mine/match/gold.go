package match

import (
	"fmt"

	roomModel "github.com/mine-games/mine/internal/database/room/model"
	"github.com/mine-games/mine/internal/database/round/model"
	"github.com/mine-games/mine/internal/mine/pubsub"
)

// resolveRound closes the playing phase and starts gold distribution. A
// saboteurs' win pays out immediately; a builders' win opens the
// choose-one-token sub-protocol.
func (s *Session) resolveRound(room *roomModel.Room, round *model.Round, buildersWin bool) error {
	for _, p := range round.Users {
		p.HasToPlay = false
	}

	if !buildersWin {
		payout := SaboteurGold(s.saboteurCount(round))
		for _, p := range round.Users {
			if !p.IsSaboteur {
				continue
			}
			if i, ok := room.PlayerIndex(p.UserID); ok {
				room.GoldPool[i] += payout
			}
		}

		if err := s.rounds.Store(s.Code, *round); err != nil {
			return fmt.Errorf("store round: %w", err)
		}
		return s.finishRound(room, round)
	}

	pool := ShuffleValues(s.rnd, rewardDeck)
	if len(pool) > len(round.Users) {
		pool = pool[:len(round.Users)]
	}
	round.GoldChoicePool = pool

	// the choose-gold token starts at the first builder in reverse turn order
	if !s.passGoldToken(round, len(round.Users)-1) {
		// no builder left to choose; close the phase outright
		if err := s.rounds.Store(s.Code, *round); err != nil {
			return fmt.Errorf("store round: %w", err)
		}
		return s.finishRound(room, round)
	}

	if err := s.rounds.Store(s.Code, *round); err != nil {
		return fmt.Errorf("store round: %w", err)
	}

	s.publishBoard(round)
	s.publishMembers(room)
	return nil
}

// passGoldToken hands the choose-gold token to the next non-saboteur walking
// the users list backwards from the given index, wrapping. Reports whether a
// holder was found.
func (s *Session) passGoldToken(round *model.Round, from int) bool {
	n := len(round.Users)
	if n == 0 {
		return false
	}

	for step := 0; step < n; step++ {
		i := ((from-step)%n + n) % n
		if !round.Users[i].IsSaboteur {
			round.Users[i].HasToChooseGold = true
			return true
		}
	}
	return false
}

func (s *Session) handleChooseGold(userID string, value int) error {
	room, err := s.fetchRoom()
	if err != nil {
		return err
	}
	if !room.Started {
		return RoomNotFoundErr
	}

	round, err := s.fetchRound(room.CurrentRound)
	if err != nil {
		return err
	}

	player, ok := round.Player(userID)
	if !ok {
		return UserNotFoundErr
	}
	if !player.HasToChooseGold {
		return NotChooseGoldTurnErr
	}

	taken := -1
	for i, v := range round.GoldChoicePool {
		if v == value {
			taken = i
			break
		}
	}
	if taken < 0 {
		return GoldValueUnavailableErr
	}
	round.GoldChoicePool = append(round.GoldChoicePool[:taken], round.GoldChoicePool[taken+1:]...)

	if i, ok := room.PlayerIndex(userID); ok {
		room.GoldPool[i] += value
	}
	player.HasToChooseGold = false

	if err := s.rooms.Set(s.Code, map[string]any{"goldPool": room.GoldPool}); err != nil {
		return fmt.Errorf("store room: %w", err)
	}

	if len(round.GoldChoicePool) == 0 {
		if err := s.rounds.Store(s.Code, round); err != nil {
			return fmt.Errorf("store round: %w", err)
		}
		return s.finishRound(&room, &round)
	}

	playerIdx, _ := round.UserIndex(userID)
	s.passGoldToken(&round, playerIdx-1)

	if err := s.rounds.Store(s.Code, round); err != nil {
		return fmt.Errorf("store round: %w", err)
	}

	s.publishMembers(&room)
	return nil
}

// finishRound moves the room to the next round, or ends the game after the
// configured number of rounds.
func (s *Session) finishRound(room *roomModel.Room, round *model.Round) error {
	if room.CurrentRound >= s.Config.RoundsNum {
		room.Started = false
		if err := s.rooms.Set(s.Code, map[string]any{
			"started":  room.Started,
			"goldPool": room.GoldPool,
		}); err != nil {
			return fmt.Errorf("store room: %w", err)
		}

		s.publish(pubsub.EventGameIsStarted, "", false)
		s.publishMembers(room)
		return nil
	}

	room.CurrentRound++
	next := s.buildRound(room.CurrentRound, room)

	if err := s.rounds.Store(s.Code, next); err != nil {
		return fmt.Errorf("store round: %w", err)
	}
	if err := s.rooms.Set(s.Code, map[string]any{
		"currentRoundIndex": room.CurrentRound,
		"goldPool":          room.GoldPool,
	}); err != nil {
		return fmt.Errorf("store room: %w", err)
	}

	s.publishBoard(&next)
	s.publishHands(&next)
	s.publishMembers(room)
	return nil
}

func (s *Session) saboteurCount(round *model.Round) int {
	var n int
	for _, p := range round.Users {
		if p.IsSaboteur {
			n++
		}
	}
	return n
}
