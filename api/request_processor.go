package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/MarziyaHasanova31/battleship/db/sqlc"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
	mc "github.com/MarziyaHasanova31/battleship/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	defaults       mb.GameConfig
	src            mb.RandomSource
	ipnet          net.IPNet
}

// NewRequestProcessor wires the managers behind the websocket endpoint.
// analytics may be nil when the server runs without a database.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	analytics *sqlc.AnalyticsManager,
	defaults mb.GameConfig,
	src mb.RandomSource,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
		defaults:       defaults,
		src:            newLockedSource(src),
		ipnet:          getServerIpNet(),
	}
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		// The original session loop keeps serving on the new connection
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			log.Println(err)
			msg := mc.NewErrMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID, err, "session does not exist")
			_ = conn.WriteJSON(msg)
			conn.Close()
		}
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Printf("session closed: %s\n", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		// A new game replaces whatever game the session had
		case mc.CodeCreateGame:
			game, commitments, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, rp.defaults, rp.src)
			if respMsg.Error == nil {
				if old := session.Game(); old != nil {
					rp.gameManager.TerminateGame(old.Uuid())
				}
				session.SetGame(game, commitments)
				rp.recordGameCreated()
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		case mc.CodeAttack, mc.CodeAutoAttack:
			req := NewRequest(payload)
			var respMsg mc.Message[mc.RespAttack]
			if signal.Code == mc.CodeAttack {
				respMsg = req.HandleAttack(session.Game(), session.Commitments())
			} else {
				respMsg = req.HandleAutoAttack(session.Game(), session.Commitments(), rp.src)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

			// This means attack operation did not complete
			if respMsg.Error != nil || !respMsg.Payload.IsGameOver {
				continue sessionLoop
			}

			rp.recordGameFinished(session.Game())
			if err := rp.sessionManager.WriteToSessionConn(session, NewEndGameMessage(session.Game(), session.Commitments())); err != nil {
				break sessionLoop
			}

		case mc.CodeBoard:
			respMsg := NewRequest(payload).HandleBoard(session.Game())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		// Ends the game of this session, finished or not, and reveals
		// both layouts
		case mc.CodeEndGame:
			game := session.Game()
			respMsg := NewEndGameMessage(game, session.Commitments())
			if game != nil {
				rp.gameManager.TerminateGame(game.Uuid())
				session.SetGame(nil, nil)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp RequestProcessor) recordGameCreated() {
	if rp.analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	// for now not killing the game for it
	if err := rp.analytics.IncrementGamesCreatedCount(ctx, rp.serverInet()); err != nil {
		log.Println(err)
	}
}

func (rp RequestProcessor) recordGameFinished(game *mb.Game) {
	if rp.analytics == nil || game == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := rp.analytics.IncrementGamesFinishedCount(ctx, rp.serverInet()); err != nil {
		log.Println(err)
	}
	if err := rp.analytics.RecordGameResult(ctx, game); err != nil {
		log.Println(err)
	}
}

var _ http.Handler = RequestProcessor{}
