package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/valyala/fastrand"

	roomDb "github.com/mine-games/mine/internal/database/room/database"
	roomModel "github.com/mine-games/mine/internal/database/room/model"
	roundDb "github.com/mine-games/mine/internal/database/round/database"
	"github.com/mine-games/mine/internal/database/round/model"
	"github.com/mine-games/mine/internal/hashutil"
	"github.com/mine-games/mine/internal/logging"
	"github.com/mine-games/mine/internal/mine/pubsub"
)

type commandKind uint8

const (
	cmdJoin commandKind = iota + 1
	cmdLeave
	cmdStart
	cmdPlay
	cmdChooseGold
	cmdChat
)

type command struct {
	kind   commandKind
	userID string
	name   string
	move   model.Move
	value  int
	text   string
	reply  chan error
}

// NewSession creates the actor owning one room. Every player action funnels
// through its command channel, so state-machine operations for a room are
// serialized on a single goroutine and the read-modify-write cycle against
// the store never races with itself.
func NewSession(config Config) *Session {
	rnd := config.Rand
	if rnd == nil {
		seed := int64(fastrand.Uint32())<<32 | int64(fastrand.Uint32())
		rnd = rand.New(rand.NewSource(seed))
	}

	return &Session{
		Config:    config,
		Code:      config.Code,
		CreatedAt: time.Now(),
		rooms:     config.Rooms,
		rounds:    config.Rounds,
		pub:       config.Broadcast,
		rnd:       rnd,
		cmdCh:     make(chan command),
		done:      make(chan struct{}),
		timeout:   config.Timeout,
		doneFn:    config.DoneFn,
	}
}

type Session struct {
	Config Config

	Code      string
	CreatedAt time.Time

	rooms  RoomStore
	rounds RoundStore
	pub    pubsub.Broadcaster
	rnd    *rand.Rand

	cmdCh chan command
	done  chan struct{}

	sema   sync.Once
	cancel func()

	timeout time.Duration
	doneFn  func(session *Session) error
}

func (s *Session) Run(ctx context.Context) {
	var cancel func()
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	logger := logging.FromContext(ctx)
	s.sema.Do(func() {
		go s.loop(ctx)
	})
	logger.Infof("room session created, code: %s, host: %s", s.Code, s.Config.HostID)
}

func (s *Session) Stop() {
	s.cancel()
}

// Join adds a user to the room lobby.
func (s *Session) Join(userID, name string) error {
	return s.execute(command{kind: cmdJoin, userID: userID, name: name})
}

// Leave removes a user from the room and, mid-round, from the round.
func (s *Session) Leave(userID string) error {
	return s.execute(command{kind: cmdLeave, userID: userID})
}

// Start begins the first round; only the host may call it.
func (s *Session) Start(userID string) error {
	return s.execute(command{kind: cmdStart, userID: userID})
}

// Play applies one move of the acting player.
func (s *Session) Play(userID string, move model.Move) error {
	return s.execute(command{kind: cmdPlay, userID: userID, move: move})
}

// ChooseGold picks one token out of the gold choice pool.
func (s *Session) ChooseGold(userID string, value int) error {
	return s.execute(command{kind: cmdChooseGold, userID: userID, value: value})
}

// Chat appends a message to the room chat log.
func (s *Session) Chat(userID, text string) error {
	return s.execute(command{kind: cmdChat, userID: userID, text: text})
}

func (s *Session) execute(cmd command) error {
	cmd.reply = make(chan error, 1)

	select {
	case s.cmdCh <- cmd:
	case <-s.done:
		return RoomNotFoundErr
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-s.done:
		return RoomNotFoundErr
	}
}

func (s *Session) loop(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("match.loop")
	defer s.shutdown(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.cmdCh:
			err := s.dispatch(cmd)
			if err != nil && !isDomainErr(err) {
				logger.Errorf("dispatch command %d: %v", cmd.kind, err)
			}
			cmd.reply <- err
		}
	}
}

func (s *Session) shutdown(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("match.shutdown")
	close(s.done)

	if s.doneFn != nil {
		if err := s.doneFn(s); err != nil {
			logger.Errorf("done function: %v", err)
		}
	}

	logger.Infof("room session closed, code: %s", s.Code)
}

func (s *Session) dispatch(cmd command) error {
	switch cmd.kind {
	case cmdJoin:
		return s.handleJoin(cmd.userID, cmd.name)
	case cmdLeave:
		return s.handleLeave(cmd.userID)
	case cmdStart:
		return s.handleStart(cmd.userID)
	case cmdPlay:
		return s.handlePlay(cmd.userID, cmd.move)
	case cmdChooseGold:
		return s.handleChooseGold(cmd.userID, cmd.value)
	case cmdChat:
		return s.handleChat(cmd.userID, cmd.text)
	}

	return fmt.Errorf("unknown command kind: %d", cmd.kind)
}

func (s *Session) fetchRoom() (roomModel.Room, error) {
	room, err := s.rooms.Fetch(s.Code)
	if err != nil {
		if errors.Is(err, roomDb.NotFoundErr) {
			return room, RoomNotFoundErr
		}
		return room, fmt.Errorf("fetch room: %w", err)
	}
	return room, nil
}

func (s *Session) fetchRound(index int) (model.Round, error) {
	round, err := s.rounds.Fetch(s.Code, index)
	if err != nil {
		if errors.Is(err, roundDb.NotFoundErr) {
			return round, RoomNotFoundErr
		}
		return round, fmt.Errorf("fetch round: %w", err)
	}
	return round, nil
}

func (s *Session) handleJoin(userID, name string) error {
	room, err := s.fetchRoom()
	if err != nil {
		return err
	}

	if _, ok := room.Player(userID); ok {
		s.publishMembers(&room)
		return nil
	}

	if room.Started {
		return RoomAlreadyStartedErr
	}

	if len(room.Users) >= s.Config.MaxPlayers {
		return RoomFullErr
	}

	room.Users = append(room.Users, roomModel.RoomPlayer{
		UserID:   userID,
		Name:     name,
		JoinedAt: time.Now(),
	})
	room.GoldPool = append(room.GoldPool, 0)

	if err := s.rooms.Set(s.Code, map[string]any{
		"users":    room.Users,
		"goldPool": room.GoldPool,
	}); err != nil {
		return fmt.Errorf("store room: %w", err)
	}

	s.publishMembers(&room)
	return nil
}

func (s *Session) handleLeave(userID string) error {
	room, err := s.fetchRoom()
	if err != nil {
		return err
	}

	idx, ok := room.PlayerIndex(userID)
	if !ok {
		return UserNotFoundErr
	}

	room.Users = append(room.Users[:idx], room.Users[idx+1:]...)
	room.GoldPool = append(room.GoldPool[:idx], room.GoldPool[idx+1:]...)
	if room.HostID == userID && len(room.Users) > 0 {
		room.HostID = room.Users[0].UserID
	}

	fields := map[string]any{
		"users":    room.Users,
		"goldPool": room.GoldPool,
		"host":     room.HostID,
	}
	if err := s.rooms.Set(s.Code, fields); err != nil {
		return fmt.Errorf("store room: %w", err)
	}

	if room.Started {
		if err := s.removeFromRound(room.CurrentRound, userID); err != nil {
			return err
		}
	}

	s.publish(pubsub.EventRemoveUser, "", userID)
	s.publishMembers(&room)

	// an abandoned room stops its actor; the manager evicts it
	if len(room.Users) == 0 {
		_ = s.rooms.Delete(s.Code)
		s.Stop()
	}

	return nil
}

func (s *Session) removeFromRound(index int, userID string) error {
	round, err := s.fetchRound(index)
	if err != nil {
		return err
	}

	for i, p := range round.Users {
		if p.UserID != userID {
			continue
		}

		hadTurn := p.HasToPlay
		hadGold := p.HasToChooseGold
		round.Users = append(round.Users[:i], round.Users[i+1:]...)

		if len(round.Users) > 0 {
			if hadTurn {
				round.Users[i%len(round.Users)].HasToPlay = true
			}
			if hadGold {
				s.passGoldToken(&round, i-1)
			}
		}
		break
	}

	if err := s.rounds.Store(s.Code, round); err != nil {
		return fmt.Errorf("store round: %w", err)
	}

	s.publishBoard(&round)
	return nil
}

func (s *Session) handleStart(userID string) error {
	room, err := s.fetchRoom()
	if err != nil {
		return err
	}

	if room.HostID != userID {
		return NotHostErr
	}
	if room.Started {
		return RoomAlreadyStartedErr
	}
	if len(room.Users) < s.Config.MinPlayers {
		return RoomBelowMinPlayersErr
	}

	room.Started = true
	room.CurrentRound = 1
	round := s.buildRound(room.CurrentRound, &room)

	if err := s.rounds.Store(s.Code, round); err != nil {
		return fmt.Errorf("store round: %w", err)
	}
	if err := s.rooms.Set(s.Code, map[string]any{
		"started":           room.Started,
		"currentRoundIndex": room.CurrentRound,
	}); err != nil {
		return fmt.Errorf("store room: %w", err)
	}

	s.publish(pubsub.EventGameIsStarted, "", true)
	s.publishBoard(&round)
	s.publishHands(&round)
	return nil
}

// buildRound assigns roles and hands, builds a fresh board with hidden
// objectives and hands the turn token to the first player.
func (s *Session) buildRound(index int, room *roomModel.Room) model.Round {
	objectives := BuildObjectiveSet(s.rnd)
	deck := Shuffle(s.rnd, BuildActionDeck())

	users := make([]*model.RoundPlayer, 0, len(room.Users))
	for _, u := range room.Users {
		users = append(users, &model.RoundPlayer{
			UserID:   u.UserID,
			Hand:     []model.Card{},
			Malus:    []model.Card{},
			Revealed: []model.ObjectiveCard{},
		})
	}

	for _, i := range s.rnd.Perm(len(users))[:SaboteurCount(len(users))] {
		users[i].IsSaboteur = true
	}

	handSize := HandSize(len(users))
	for _, p := range users {
		p.Hand = append(p.Hand, deck[:handSize]...)
		deck = deck[handSize:]
	}

	users[0].HasToPlay = true

	return model.Round{
		Index:          index,
		Board:          NewBoard(objectives),
		Users:          users,
		Deck:           deck,
		Objectives:     objectives,
		GoldChoicePool: []int{},
		Revealed:       []model.ObjectiveCard{},
	}
}

func (s *Session) handlePlay(userID string, move model.Move) error {
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

	for _, p := range round.Users {
		if p.HasToChooseGold {
			return ItsGoldTimeErr
		}
	}

	player, ok := round.Player(userID)
	if !ok {
		return UserNotFoundErr
	}
	if !player.HasToPlay {
		return NotYourTurnErr
	}

	idx, ok := player.InHand(move.Card.ID)
	if !ok {
		return CardNotInHandErr
	}

	card := player.Hand[idx]
	card.Mirrored = move.Card.Mirrored

	if player.HasMalus() && !move.Discard && card.IsPathLike() {
		return CardCannotBePlacedErr
	}

	buildersWin := false
	if !move.Discard {
		var err error
		buildersWin, err = s.applyCard(&round, player, card, move)
		if err != nil {
			return err
		}
	}

	// discard or placed either way, the card leaves the hand and one is drawn
	player.Hand = append(player.Hand[:idx], player.Hand[idx+1:]...)
	if len(round.Deck) > 0 {
		player.Hand = append(player.Hand, round.Deck[0])
		round.Deck = round.Deck[1:]
	}

	saboteursWin := !buildersWin && s.saboteursWin(&round)

	s.advanceTurn(&round, player)

	if buildersWin || saboteursWin {
		return s.resolveRound(&room, &round, buildersWin)
	}

	if err := s.rounds.Store(s.Code, round); err != nil {
		return fmt.Errorf("store round: %w", err)
	}

	s.publishBoard(&round)
	s.publishHands(&round)
	return nil
}

// applyCard applies the specific effect of a non-discard move; it reports
// whether the placement revealed the treasure.
func (s *Session) applyCard(round *model.Round, player *model.RoundPlayer, card model.Card, move model.Move) (bool, error) {
	switch card.Type {
	case model.CardPath, model.CardDeadend:
		x, y, ok := coords(move)
		if !ok || !CanPlace(&round.Board, card, x, y) {
			return false, CardCannotBePlacedErr
		}
		placed := card
		round.Board.Set(x, y, &placed)
		return s.autoReveal(round), nil

	case model.CardBrokenTool:
		return false, s.attack(round, card, move.TargetUser)

	case model.CardRepairTool, model.CardRepairDouble:
		return false, s.repair(round, card, move)

	case model.CardInspect:
		return false, s.revealObjective(round, player, move)

	case model.CardCollapse:
		x, y, ok := coords(move)
		if !ok || !CanDestroy(&round.Board, x, y) {
			return false, CardCannotBePlacedErr
		}
		round.Board.Set(x, y, nil)
		return false, nil

	case model.CardStart, model.CardEndHidden, model.CardEndRevealed:
		return false, CardCannotBePlacedErr
	}

	return false, CardCannotBePlacedErr
}

// attack attaches a broken-tool card to the target's malus list.
func (s *Session) attack(round *model.Round, card model.Card, targetUser string) error {
	if card.Type != model.CardBrokenTool || len(card.Tools) == 0 {
		return CardNotBrokenToolErr
	}

	target, ok := round.Player(targetUser)
	if !ok {
		return UserNotFoundErr
	}

	if target.MalusTool(card.Tools[0]) {
		return ToolAlreadyBrokenErr
	}

	target.Malus = append(target.Malus, card)
	return nil
}

// repair removes every malus card sharing a tool with the repair card from
// the target.
func (s *Session) repair(round *model.Round, card model.Card, move model.Move) error {
	target, ok := round.Player(move.TargetUser)
	if !ok {
		return UserNotFoundErr
	}

	if move.TargetedMalus != nil {
		shared := false
		for _, tool := range move.TargetedMalus.Tools {
			if card.HasTool(tool) {
				shared = true
			}
		}
		if !shared {
			return CardCannotRepairToolErr
		}
	}

	repaired := false
	kept := target.Malus[:0]
	for _, malus := range target.Malus {
		matches := false
		for _, tool := range card.Tools {
			if malus.HasTool(tool) {
				matches = true
			}
		}
		if matches {
			repaired = true
			continue
		}
		kept = append(kept, malus)
	}
	target.Malus = kept

	if !repaired {
		return ToolNotBrokenErr
	}

	return nil
}

// revealObjective records the objective at the move's coordinates under the
// acting player; coordinates are required.
func (s *Session) revealObjective(round *model.Round, player *model.RoundPlayer, move model.Move) error {
	x, y, ok := coords(move)
	if !ok {
		return NoObjectiveCardAtPosErr
	}

	obj, ok := round.ObjectiveAt(x, y)
	if !ok {
		return NoObjectiveCardAtPosErr
	}

	for _, seen := range player.Revealed {
		if seen.ID == obj.ID {
			return nil
		}
	}
	player.Revealed = append(player.Revealed, obj)
	return nil
}

// autoReveal flips every objective reachable from the start cell face up and
// reports whether one of them is the treasure.
func (s *Session) autoReveal(round *model.Round) bool {
	treasure := false
	for _, obj := range round.Objectives {
		if round.IsRevealed(obj.X, obj.Y) {
			continue
		}
		if !PathExists(&round.Board, model.StartX, model.StartY, obj.X, obj.Y) {
			continue
		}

		round.Revealed = append(round.Revealed, obj)
		if card := round.Board.At(obj.X, obj.Y); card != nil {
			card.Type = model.CardEndRevealed
			card.ImageRef = "end-revealed"
		}
		if obj.Kind == model.KindTreasure {
			treasure = true
		}
	}
	return treasure
}

// saboteursWin holds once the shared deck is exhausted and no builder has a
// card left to play.
func (s *Session) saboteursWin(round *model.Round) bool {
	if len(round.Deck) > 0 {
		return false
	}
	for _, p := range round.Users {
		if !p.IsSaboteur && len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// advanceTurn passes the turn token round-robin over the users list.
func (s *Session) advanceTurn(round *model.Round, current *model.RoundPlayer) {
	current.HasToPlay = false
	for i, p := range round.Users {
		if p.UserID == current.UserID {
			round.Users[(i+1)%len(round.Users)].HasToPlay = true
			return
		}
	}
}

func (s *Session) handleChat(userID, text string) error {
	room, err := s.fetchRoom()
	if err != nil {
		return err
	}

	sender, ok := room.Player(userID)
	if !ok {
		return UserNotFoundErr
	}

	msg := roomModel.Message{
		ID:        hashutil.SerializedSha1FromTime(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	room.Chat = append(room.Chat, msg)

	if err := s.rooms.Set(s.Code, map[string]any{"chatLog": room.Chat}); err != nil {
		return fmt.Errorf("store room: %w", err)
	}

	s.publish(pubsub.EventChat, "", struct {
		Message roomModel.Message `json:"message"`
		Sender  string            `json:"sender"`
	}{msg, sender.Name})

	return nil
}

func coords(move model.Move) (int, int, bool) {
	if move.X == nil || move.Y == nil {
		return 0, 0, false
	}
	return *move.X, *move.Y, true
}

func (s *Session) publish(typ pubsub.EventType, userID string, payload any) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(pubsub.Event{Room: s.Code, Type: typ, UserID: userID, Payload: payload})
}

func (s *Session) publishMembers(room *roomModel.Room) {
	s.publish(pubsub.EventMembers, "", room.Public())
}

func (s *Session) publishBoard(round *model.Round) {
	s.publish(pubsub.EventBoard, "", round.Board)
}

// publishHands sends each player their own cards only.
func (s *Session) publishHands(round *model.Round) {
	for _, p := range round.Users {
		s.publish(pubsub.EventCards, p.UserID, p.Hand)
	}
}

func isDomainErr(err error) bool {
	for _, domain := range []error{
		UserNotFoundErr, NotYourTurnErr, CardNotInHandErr, CardCannotBePlacedErr,
		ToolAlreadyBrokenErr, ToolNotBrokenErr, CardNotBrokenToolErr,
		CardCannotRepairToolErr, RoomAlreadyStartedErr, RoomFullErr,
		RoomBelowMinPlayersErr, NotHostErr, ItsGoldTimeErr, NotChooseGoldTurnErr,
		GoldValueUnavailableErr, NoObjectiveCardAtPosErr, RoomNotFoundErr,
	} {
		if errors.Is(err, domain) {
			return true
		}
	}
	return false
}
