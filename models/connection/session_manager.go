package connection

import (
	"context"
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
)

const (
	defaultGracePeriod     = time.Minute * 2
	defaultCleanupInterval = time.Minute * 20
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error
	CountSessions() int

	WriteToSessionConn(session *Session, msg interface{}) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	gracePeriod     time.Duration
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

// WithGracePeriod sets how long an abnormally closed session waits for
// its client to reconnect.
func WithGracePeriod(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = d
	}
}

func WithCleanupInterval(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = d
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		gracePeriod:     defaultGracePeriod,
		cleanupInterval: defaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotExists(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()
	delete(bsm.sessions, sessionId)
}

func (bsm *BattleshipSessionManager) CountSessions() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}
	session.reconnect(conn)
	log.Printf("session reconnected: %s\n", sessionId)
	return nil
}

// To ensure that there is no dangling connections, the session manager
// marks sessions older than the cleanup interval as stale and deletes
// them. Returns when ctx is done.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.cleanup(time.Now())
		}
	}
}

func (bsm *BattleshipSessionManager) cleanup(now time.Time) int {
	assumedClosedConns := 10
	toDelete := make([]string, 0, assumedClosedConns)

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for id, session := range bsm.sessions {
		if now.Sub(session.createdAt) > bsm.cleanupInterval {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		delete(bsm.sessions, id)
		log.Printf("removed stale session: %s", id)
	}
	return len(toDelete)
}

// This function takes care of abnormal closures happening to the
// client. This happens due to backgrounding in IOS clients or any
// other unexpected reasons for web apps. A session without a game has
// nothing worth waiting for.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	if s.game == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("no game in session")
	}

	log.Printf("starting grace period for %s\n", s.id)
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Printf("session terminated: %s\n", s.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-s.reconnectionSignal():
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}) error {
	err := session.writeToConnWithRetry(msg)
	if err == nil {
		return nil
	}

	connErr, ok := err.(ConnErr)
	if !ok {
		return err
	}

	if connErr.Code() == ConnLoopAbnormalClosureRetry {
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return err
		}
		return session.writeToConnWithRetry(msg)
	}
	return connErr
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}
