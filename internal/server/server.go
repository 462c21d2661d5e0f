package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/soleohess/poker/internal/tournament"
)

// DefaultDecisionTimeout bounds how long a remote client may think.
const DefaultDecisionTimeout = 10 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithDecisionTimeout sets the per-decision deadline sent to clients.
func WithDecisionTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithClock substitutes the clock used for decision deadlines.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// Server accepts websocket players and turns each into a tournament
// entrant. It does not run hands itself; WaitForPlayers hands the seated
// agents to the caller.
type Server struct {
	logger   *log.Logger
	upgrader websocket.Upgrader
	clock    quartz.Clock
	timeout  time.Duration

	mu     sync.Mutex
	agents map[string]*NetworkAgent
	conns  map[string]*Connection
	joined chan *NetworkAgent

	httpServer *http.Server
}

// New creates a server. Call Handler or ListenAndServe to accept players.
func New(logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clock:   quartz.NewReal(),
		timeout: DefaultDecisionTimeout,
		agents:  make(map[string]*NetworkAgent),
		conns:   make(map[string]*Connection),
		joined:  make(chan *NetworkAgent, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	})
	return mux
}

// ListenAndServe serves until Shutdown or a listener error.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}
	s.logger.Info("listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener and closes every client connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// WaitForPlayers blocks until n players have joined and returns them as
// tournament entrants in join order.
func (s *Server) WaitForPlayers(ctx context.Context, n int) ([]tournament.Entrant, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 players, asked for %d", n)
	}

	entrants := make([]tournament.Entrant, 0, n)
	for len(entrants) < n {
		select {
		case agent := <-s.joined:
			entrants = append(entrants, tournament.Entrant{ID: agent.PlayerID(), Agent: agent})
			s.logger.Info("player seated", "player", agent.PlayerID(),
				"seated", len(entrants), "waiting", n-len(entrants))
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return entrants, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn := NewConnection(ws, s.logger)

	agent, err := s.join(conn)
	if err != nil {
		s.logger.Warn("join rejected", "error", err)
		conn.SendError("join_failed", err.Error())
		_ = conn.Close()
		return
	}

	s.readLoop(conn, agent)
}

// join performs the handshake: the first message must announce a unique
// player name.
func (s *Server) join(conn *Connection) (*NetworkAgent, error) {
	msg, err := conn.Read()
	if err != nil {
		return nil, fmt.Errorf("reading join: %w", err)
	}
	if msg.Type != MessageTypeJoin {
		return nil, fmt.Errorf("expected %s, got %s", MessageTypeJoin, msg.Type)
	}
	var join JoinData
	if err := json.Unmarshal(msg.Data, &join); err != nil {
		return nil, fmt.Errorf("decoding join: %w", err)
	}
	if join.PlayerName == "" {
		return nil, fmt.Errorf("join without a player name")
	}

	s.mu.Lock()
	if _, taken := s.agents[join.PlayerName]; taken {
		s.mu.Unlock()
		return nil, fmt.Errorf("player name %q already taken", join.PlayerName)
	}
	agent := NewNetworkAgent(join.PlayerName, conn, s.logger, s.timeout, s.clock)
	s.agents[join.PlayerName] = agent
	s.conns[join.PlayerName] = conn
	seated := len(s.agents)
	s.mu.Unlock()

	conn.SetPlayer(join.PlayerName)

	ack, err := NewMessage(MessageTypeJoined, JoinedData{PlayerID: join.PlayerName, Seated: seated})
	if err == nil {
		err = conn.Send(ack)
	}
	if err != nil {
		s.remove(join.PlayerName)
		return nil, fmt.Errorf("acking join: %w", err)
	}

	s.joined <- agent
	return agent, nil
}

// readLoop pumps client messages into the agent until the connection dies.
// After a disconnect the agent stays seated; its sends fail and every
// decision becomes a fold.
func (s *Server) readLoop(conn *Connection, agent *NetworkAgent) {
	for {
		msg, err := conn.Read()
		if err != nil {
			s.logger.Info("client disconnected", "player", agent.PlayerID(), "error", err)
			s.remove(agent.PlayerID())
			_ = conn.Close()
			return
		}

		switch msg.Type {
		case MessageTypeAction:
			data, err := decodeActionData(msg.Data)
			if err != nil {
				conn.SendError("bad_action", err.Error())
				continue
			}
			agent.HandleAction(data)

		default:
			conn.SendError("unexpected_message", string(msg.Type))
		}
	}
}

func (s *Server) remove(playerID string) {
	s.mu.Lock()
	delete(s.conns, playerID)
	s.mu.Unlock()
}
