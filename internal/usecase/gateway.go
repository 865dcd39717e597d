package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gridrush/tictactoe-backend/internal/apperror"
	"github.com/gridrush/tictactoe-backend/internal/entity"
	"github.com/gridrush/tictactoe-backend/internal/game"
	"github.com/gridrush/tictactoe-backend/internal/matchmaking"
	"github.com/gridrush/tictactoe-backend/internal/session"
)

// Outbound event names of the per-connection channel.
const (
	EventWaiting       = "waiting"
	EventStart         = "start"
	EventState         = "state"
	EventSettings      = "settings"
	EventSettingsSaved = "settingsSaved"
	EventOpponentLeft  = "opponentLeft"
	EventError         = "error"
)

const anonymousUsername = "anon"

// Conn is the transport-side handle of a live connection. The gateway
// never closes it; it only references it for delivery. Send must not
// block: a dead or slow peer cannot stall event processing.
type Conn interface {
	ID() string
	Send(event string, payload any)
	Alive() bool
}

// StatePayload is the broadcastable snapshot of a session, sent to both
// participants after every state-affecting event. Winner and WinningLine
// carry the real terminal result once a game finishes.
type StatePayload struct {
	SessionID   string       `json:"sessionId"`
	Board       entity.Board `json:"board"`
	NextTurn    entity.Mark  `json:"nextTurn,omitempty"`
	Status      string       `json:"status"`
	Winner      entity.Mark  `json:"winner,omitempty"`
	WinningLine []int        `json:"winningLine,omitempty"`
}

type StartPayload struct {
	SessionID string          `json:"sessionId"`
	Mark      entity.Mark     `json:"mark"`
	Opponent  OpponentPayload `json:"opponent"`
}

type OpponentPayload struct {
	Username string `json:"username"`
}

type MessagePayload struct {
	Message string `json:"message"`
}

type AckPayload struct {
	OK bool `json:"ok"`
}

type clientState struct {
	conn      Conn
	username  string
	sessionID string
	mark      entity.Mark
}

// Gateway bridges transport events to the queue, the registry, and the
// board evaluator, and emits the resulting state to affected connections.
// A single mutex serializes every game-affecting event, so the queue and
// the registry have exactly one writer.
type Gateway struct {
	logger   *slog.Logger
	queue    *matchmaking.Queue
	registry *session.Registry
	prefs    *Preferences

	mu      sync.Mutex
	clients map[string]*clientState
}

func NewGateway(logger *slog.Logger, queue *matchmaking.Queue, registry *session.Registry, prefs *Preferences) *Gateway {
	return &Gateway{
		logger:   logger,
		queue:    queue,
		registry: registry,
		prefs:    prefs,
		clients:  make(map[string]*clientState),
	}
}

// Register makes a fresh transport connection known to the gateway.
func (that *Gateway) Register(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[conn.ID()] = &clientState{conn: conn}
}

// Join records the username, pushes any stored settings, enqueues the
// connection, and attempts exactly one pairing. The settings fetch runs
// before the event lock is taken: storage can never stall matchmaking.
func (that *Gateway) Join(ctx context.Context, conn Conn, username string) {
	log := that.logger.With("method", "Join", "connID", conn.ID())

	if username == "" {
		username = anonymousUsername
	}

	settings := that.prefs.Get(ctx, username)
	conn.Send(EventSettings, settings)

	that.mu.Lock()
	defer that.mu.Unlock()

	state, ok := that.clients[conn.ID()]
	if !ok {
		state = &clientState{conn: conn}
		that.clients[conn.ID()] = state
	}
	state.username = username

	that.queue.Enqueue(conn.ID(), username)
	conn.Send(EventWaiting, struct{}{})

	log.Info("player queued", "username", username)

	that.tryPairLocked()
}

func (that *Gateway) tryPairLocked() {
	log := that.logger.With("method", "tryPairLocked")

	sess := that.queue.TryPair()
	if sess == nil {
		return
	}

	sessionID := that.registry.Create(sess)

	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		player := sess.Players[mark]

		state, ok := that.clients[player.ConnID]
		if !ok {
			log.Warn("paired connection has no client state", "connID", player.ConnID)
			continue
		}

		state.sessionID = sessionID
		state.mark = mark

		opponent := sess.Players[mark.Opposite()]
		state.conn.Send(EventStart, StartPayload{
			SessionID: sessionID,
			Mark:      mark,
			Opponent:  OpponentPayload{Username: opponent.Username},
		})
	}

	log.Info("players matched",
		"sessionID", sessionID,
		"playerX", sess.Players[entity.MarkX].Username,
		"playerO", sess.Players[entity.MarkO].Username,
	)

	that.broadcastLocked(sess, game.Result{})
}

// Move validates a proposed move against the addressed session and, when
// accepted, persists the new position and broadcasts it to both slots.
// Every rejection is surfaced to the sender only and mutates nothing.
func (that *Gateway) Move(conn Conn, sessionID string, index int, mark entity.Mark) {
	log := that.logger.With("method", "Move", "connID", conn.ID(), "sessionID", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	sess, ok := that.registry.Get(sessionID)
	if !ok {
		conn.Send(EventError, MessagePayload{Message: apperror.ErrGameNotFound.Error()})
		return
	}

	if sess.IsFinished() {
		conn.Send(EventError, MessagePayload{Message: apperror.ErrGameFinished.Error()})
		return
	}

	result := game.Evaluate(sess.Board, index, mark, sess.NextTurn)
	if !result.Valid {
		log.Info("move rejected", "reason", result.Reason)
		conn.Send(EventError, MessagePayload{Message: result.Reason.Error()})
		return
	}

	that.registry.Update(sessionID, func(sess *entity.Session) {
		sess.Board = result.Board
		sess.NextTurn = result.NextTurn
		if result.Winner != "" || result.Draw {
			sess.Status = entity.StatusFinished
		}
	})

	that.broadcastLocked(sess, result)
}

// broadcastLocked sends the current snapshot to both participant slots,
// skipping any slot whose connection is no longer live.
func (that *Gateway) broadcastLocked(sess *entity.Session, result game.Result) {
	payload := StatePayload{
		SessionID:   sess.ID,
		Board:       sess.Board,
		NextTurn:    sess.NextTurn,
		Status:      sess.Status,
		Winner:      result.Winner,
		WinningLine: result.WinningLine,
	}

	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		player := sess.Players[mark]
		if player == nil {
			continue
		}

		state, ok := that.clients[player.ConnID]
		if !ok || !state.conn.Alive() {
			continue
		}

		state.conn.Send(EventState, payload)
	}
}

// SaveSettings echoes the saved settings back immediately and persists
// them off the event path. Valid in any connection state.
func (that *Gateway) SaveSettings(ctx context.Context, conn Conn, settings *entity.UserSettings) {
	that.mu.Lock()
	state, ok := that.clients[conn.ID()]
	if settings.Username == "" && ok {
		settings.Username = state.username
	}
	if ok && settings.Username != "" {
		state.username = settings.Username
	}
	that.mu.Unlock()

	if settings.Username == "" {
		return
	}

	that.prefs.Save(ctx, settings)

	conn.Send(EventSettings, settings)
	conn.Send(EventSettingsSaved, AckPayload{OK: true})
}

// Leave handles a voluntary exit: queue membership and any session are
// purged together and the opponent is told the game is over. The
// transport terminates the connection afterwards.
func (that *Gateway) Leave(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.detachLocked(conn, "Opponent left")
}

// Disconnect handles a transport-level drop. There is no grace period:
// the session, if any, is destroyed and the opponent notified.
func (that *Gateway) Disconnect(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.detachLocked(conn, "Opponent disconnected")
	delete(that.clients, conn.ID())
}

func (that *Gateway) detachLocked(conn Conn, message string) {
	log := that.logger.With("method", "detachLocked", "connID", conn.ID())

	state, ok := that.clients[conn.ID()]
	if !ok {
		return
	}

	that.queue.Remove(conn.ID())

	if state.sessionID == "" {
		return
	}

	if sess, found := that.registry.Get(state.sessionID); found {
		that.registry.Delete(state.sessionID)

		if opponent := sess.Opponent(conn.ID()); opponent != nil {
			if opponentState, online := that.clients[opponent.ConnID]; online {
				opponentState.sessionID = ""
				opponentState.mark = ""

				if opponentState.conn.Alive() {
					opponentState.conn.Send(EventOpponentLeft, MessagePayload{Message: message})
				}
			}
		}

		log.Info("session destroyed", "sessionID", state.sessionID)
	}

	state.sessionID = ""
	state.mark = ""
}
