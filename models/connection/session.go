package connection

import (
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MarziyaHasanova31/battleship/internal/commit"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

type ConnectionHandler interface {
	reconnect(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}) error
	onConnErr(err error) uint8
}

// Session is one client connection and the game it drives. The game is
// only ever touched from the goroutine serving the session.
type Session struct {
	id                     string
	mu                     sync.RWMutex
	conn                   *websocket.Conn
	reconnectionSignalChan chan struct{}
	createdAt              time.Time

	game        *mb.Game
	commitments []*commit.Commitment
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}),
		createdAt:              time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

func (s *Session) Game() *mb.Game {
	return s.game
}

func (s *Session) Commitments() []*commit.Commitment {
	return s.commitments
}

// SetGame attaches a new game to the session, replacing any previous one.
func (s *Session) SetGame(game *mb.Game, commitments []*commit.Commitment) {
	s.game = game
	s.commitments = commitments
}

func (s *Session) reconnectionSignal() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reconnectionSignalChan
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Mobile clients going to background end up here
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes a JSON message to the connection of this session, retrying
// with a linear backoff on timeouts.
func (s *Session) writeToConnWithRetry(msg interface{}) error {
	var retries uint8

	for {
		conn := s.Conn()
		err := conn.WriteJSON(msg)
		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Printf("writing json failed to ws [%s]; retrying... (retry no. %d)\n", conn.RemoteAddr().String(), retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue
			}
			log.Printf("max retries reached for writing to ws [%s]:%s", conn.RemoteAddr().String(), err)
			return NewConnErr(ConnLoopBreak)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.Conn().RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.Conn().RemoteAddr().String(), err)
		return ConnLoopBreak
	}
}

// reconnect swaps in the new connection and wakes up whoever is waiting
// for the session to come back.
func (s *Session) reconnect(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.reconnectionSignalChan)
	s.conn = conn
	s.reconnectionSignalChan = make(chan struct{})
}
