package mine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/valyala/fastrand"

	roomDb "github.com/mine-games/mine/internal/database/room/database"
	roomModel "github.com/mine-games/mine/internal/database/room/model"
	roundDb "github.com/mine-games/mine/internal/database/round/database"
	roundModel "github.com/mine-games/mine/internal/database/round/model"
	"github.com/mine-games/mine/internal/logging"
	"github.com/mine-games/mine/internal/mine/match"
	"github.com/mine-games/mine/internal/mine/pubsub"
	"github.com/mine-games/mine/internal/strpool"
)

const codeLen = 6

func NewManager(config *Config, rooms *roomDb.DB, rounds *roundDb.DB, pub pubsub.Broadcaster) *Manager {
	ctxSess, cancelSess := context.WithCancel(context.Background())
	return &Manager{
		config:       config,
		rooms:        rooms,
		rounds:       rounds,
		pub:          pub,
		sessions:     map[string]*match.Session{},
		userSessions: map[string]*match.Session{},
		ctxSess:      ctxSess,
		cancelSess:   cancelSess,
	}
}

// Manager owns the live room sessions and routes logical commands to the
// right room actor.
type Manager struct {
	mtx sync.RWMutex

	config *Config
	rooms  *roomDb.DB
	rounds *roundDb.DB
	pub    pubsub.Broadcaster

	// key: room code
	sessions map[string]*match.Session
	// key: userId of a joined member
	userSessions map[string]*match.Session

	ctxSess    context.Context
	cancelSess func()
	cancel     func()
}

// Run blocks until ctx closes, then tears down every live session.
func (m *Manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	logger := logging.FromContext(ctx).Named("manager")
	logger.Infof("manager started")

	<-ctx.Done()
	m.cancelSess()
	return nil
}

func (m *Manager) Stop() {
	m.cancel()
}

// CreateRoom allocates a unique 6-digit code, persists the empty room and
// spins up its session actor with the creator as host.
func (m *Manager) CreateRoom(hostID, name string) (string, error) {
	code, err := m.generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	room := roomModel.Room{
		Code:      code,
		HostID:    hostID,
		Users:     []roomModel.RoomPlayer{},
		GoldPool:  []int{},
		Chat:      []roomModel.Message{},
		CreatedAt: time.Now(),
	}
	if err := m.rooms.Store(room); err != nil {
		return "", fmt.Errorf("store room: %w", err)
	}

	session := m.spawnSession(code, hostID)
	if err := session.Join(hostID, name); err != nil {
		return "", err
	}

	m.mtx.Lock()
	m.userSessions[hostID] = session
	m.mtx.Unlock()

	return code, nil
}

// JoinRoom attaches a user to the room with the given code.
func (m *Manager) JoinRoom(code, userID, name string) error {
	session, ok := m.session(code)
	if !ok {
		// a room may exist in the store without a live actor after restart
		exists, err := m.rooms.Exists(code)
		if err != nil {
			return fmt.Errorf("room exists: %w", err)
		}
		if !exists {
			return match.RoomNotFoundErr
		}

		room, err := m.rooms.Fetch(code)
		if err != nil {
			return fmt.Errorf("fetch room: %w", err)
		}
		session = m.spawnSession(code, room.HostID)
	}

	if err := session.Join(userID, name); err != nil {
		return err
	}

	m.mtx.Lock()
	m.userSessions[userID] = session
	m.mtx.Unlock()

	return nil
}

func (m *Manager) LeaveRoom(userID string) error {
	session, ok := m.userSession(userID)
	if !ok {
		return match.RoomNotFoundErr
	}

	if err := session.Leave(userID); err != nil {
		return err
	}

	m.mtx.Lock()
	delete(m.userSessions, userID)
	m.mtx.Unlock()

	return nil
}

func (m *Manager) StartGame(userID string) error {
	session, ok := m.userSession(userID)
	if !ok {
		return match.RoomNotFoundErr
	}
	return session.Start(userID)
}

func (m *Manager) Play(userID string, move roundModel.Move) error {
	session, ok := m.userSession(userID)
	if !ok {
		return match.RoomNotFoundErr
	}
	return session.Play(userID, move)
}

func (m *Manager) ChooseGold(userID string, value int) error {
	session, ok := m.userSession(userID)
	if !ok {
		return match.RoomNotFoundErr
	}
	return session.ChooseGold(userID, value)
}

func (m *Manager) Chat(userID, text string) error {
	session, ok := m.userSession(userID)
	if !ok {
		return match.RoomNotFoundErr
	}
	return session.Chat(userID, text)
}

// DoesRoomExists reports whether a room with the code is stored.
func (m *Manager) DoesRoomExists(code string) (bool, error) {
	return m.rooms.Exists(code)
}

func (m *Manager) spawnSession(code, hostID string) *match.Session {
	session := match.NewSession(match.Config{
		Code:       code,
		HostID:     hostID,
		RoundsNum:  m.config.RoundsNum,
		MinPlayers: m.config.MinPlayers,
		MaxPlayers: m.config.MaxPlayers,
		Rooms:      m.rooms,
		Rounds:     m.rounds,
		Broadcast:  m.pub,
		Timeout:    m.config.PlayingTimeout,
		DoneFn:     m.sessionDoneFn,
	})
	session.Run(m.ctxSess)

	m.mtx.Lock()
	m.sessions[code] = session
	m.mtx.Unlock()

	return session
}

func (m *Manager) sessionDoneFn(session *match.Session) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	delete(m.sessions, session.Code)
	for userID, s := range m.userSessions {
		if s == session {
			delete(m.userSessions, userID)
		}
	}

	return nil
}

// generateCode retries random 6-digit draws until one is unused, both in the
// store and among live sessions.
func (m *Manager) generateCode() (string, error) {
	for {
		code := randomCode()

		exists, err := m.rooms.Exists(code)
		if err != nil {
			return "", err
		}
		if exists {
			continue
		}

		if _, live := m.session(code); !live {
			return code, nil
		}
	}
}

func randomCode() string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	for i := 0; i < codeLen; i++ {
		buf.WriteByte(byte('0') + byte(fastrand.Uint32n(10)))
	}
	return buf.String()
}

func (m *Manager) session(code string) (*match.Session, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	session, ok := m.sessions[code]

	return session, ok
}

func (m *Manager) userSession(userID string) (*match.Session, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	session, ok := m.userSessions[userID]

	return session, ok
}
