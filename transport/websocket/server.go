package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridrush/tictactoe-backend/internal/entity"
	"github.com/gridrush/tictactoe-backend/internal/usecase"
)

// Inbound event names accepted from clients.
const (
	eventJoin         = "join"
	eventMove         = "move"
	eventSaveSettings = "saveSettings"
	eventLeave        = "leave"
)

const genericServerError = "server error"

type gameGateway interface {
	Register(conn usecase.Conn)
	Join(ctx context.Context, conn usecase.Conn, username string)
	Move(conn usecase.Conn, sessionID string, index int, mark entity.Mark)
	SaveSettings(ctx context.Context, conn usecase.Conn, settings *entity.UserSettings)
	Leave(conn usecase.Conn)
	Disconnect(conn usecase.Conn)
}

type Server struct {
	logger  *slog.Logger
	gateway gameGateway

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gateway gameGateway) *Server {
	return &Server{
		logger:  logger,
		gateway: gateway,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// Start serves the socket endpoint until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(that.logger, conn)
	log = log.With("connID", client.ID())

	that.gateway.Register(client)
	log.Info("connection established")

	go client.writePump()
	that.readPump(ctx, client)

	that.gateway.Disconnect(client)
	client.close()

	log.Info("connection closed")
}

// readPump decodes inbound envelopes and dispatches them until the peer
// goes away. A malformed message never reaches domain logic: it is
// answered with a generic server error and the loop keeps going.
func (that *Server) readPump(ctx context.Context, client *Client) {
	log := that.logger.With("method", "readPump", "connID", client.ID())

	for {
		var raw struct {
			Event   string          `json:"event"`
			Payload json.RawMessage `json:"payload"`
		}

		if err := client.conn.ReadJSON(&raw); err != nil {
			log.Debug("read failed, dropping connection", "error", err)
			return
		}

		if err := that.dispatch(ctx, client, raw.Event, raw.Payload); err != nil {
			log.Error("failed to handle event", "event", raw.Event, "error", err)
			client.Send(usecase.EventError, usecase.MessagePayload{Message: genericServerError})
		}

		if raw.Event == eventLeave {
			return
		}
	}
}

func (that *Server) dispatch(ctx context.Context, client *Client, event string, payload json.RawMessage) error {
	switch event {
	case eventJoin:
		var req struct {
			Username string `json:"username"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return fmt.Errorf("failed to unmarshal join payload: %w", err)
			}
		}

		that.gateway.Join(ctx, client, req.Username)

	case eventMove:
		var req struct {
			SessionID string `json:"sessionId"`
			Index     *int   `json:"index"`
			Mark      string `json:"mark"`
		}
		if err := json.Unmarshal(payload, &req); err != nil {
			return fmt.Errorf("failed to unmarshal move payload: %w", err)
		}

		// A missing index is out of range by definition; the evaluator
		// rejects it with its own reason.
		index := -1
		if req.Index != nil {
			index = *req.Index
		}

		that.gateway.Move(client, req.SessionID, index, entity.Mark(req.Mark))

	case eventSaveSettings:
		var settings entity.UserSettings
		if err := json.Unmarshal(payload, &settings); err != nil {
			return fmt.Errorf("failed to unmarshal settings payload: %w", err)
		}

		that.gateway.SaveSettings(ctx, client, &settings)

	case eventLeave:
		// The sender's connection is terminated after a voluntary leave;
		// readPump returns once this handler is done.
		that.gateway.Leave(client)

	default:
		return fmt.Errorf("unknown event %q", event)
	}

	return nil
}
