// Package server carries the websocket side of the command link: the
// companion app writes the same text commands it writes over BLE, and
// receives clock updates as JSON.
package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/commands"
	"github.com/rpichess/clockd/pkg/events"
	"github.com/rpichess/clockd/pkg/game"
	"github.com/rpichess/clockd/pkg/messages"
)

// InboundHubMessage are the messages that the hub receives
type InboundHubMessage struct {
	Conn *Connection // who sent it
	Raw  string      // raw command text
}

// Hub keeps track of all active connections, routes inbound command
// text to the game controller and broadcasts state updates to every
// connected peer.
type Hub struct {
	mu          sync.RWMutex         // Mutex to protect direct access to the connections map.
	connections map[*Connection]bool // Registered connections

	register   chan *Connection       // Incoming registration
	unregister chan *Connection       // Incoming unregistration
	inbound    chan InboundHubMessage // Raw command strings from connections

	broadcast chan []byte // Frames for every connected peer

	done chan struct{}

	starter commands.Starter
	logger  *zap.Logger
}

// NewHub creates a new hub and subscribes it to controller events so
// every state change reaches the connected peers.
func NewHub(starter commands.Starter, publisher *events.Publisher, logger *zap.Logger) *Hub {
	h := &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundHubMessage),
		broadcast:   make(chan []byte, 16),
		done:        make(chan struct{}),
		starter:     starter,
		logger:      logger,
	}

	publisher.SubscribeAll(func(e events.Event) {
		snap, ok := e.Payload.(game.Snapshot)
		if !ok {
			return
		}

		h.BroadcastState(string(e.Type), snap)
	})

	return h
}

// Run is the main execution of the hub
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case data := <-h.broadcast:
			h.broadcastFrame(data)
		}
	}
}

// Shutdown stops the hub loop and closes every connection.
func (h *Hub) Shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		close(conn.send)
		delete(h.connections, conn)
	}
}

func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastState queues a snapshot update for every peer.
func (h *Hub) BroadcastState(event string, snap game.Snapshot) {
	data, err := json.Marshal(messages.OutboundMessage{
		Event:   event,
		Payload: messages.ClockState(snap),
	})
	if err != nil {
		h.logger.Error("marshal broadcast", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// A stalled hub loop must not block the event fan-out.
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn] = true

	h.logger.Info("connection registered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("total", len(h.connections)))

	conn.SendJSON(messages.OutboundMessage{
		Event:   "CONNECTED",
		Payload: messages.ConnectedPayload{ConnectionId: conn.ID.String()},
	})
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[conn]; ok {
		delete(h.connections, conn)
		close(conn.send)

		h.logger.Info("connection unregistered",
			zap.String("connection_id", conn.ID.String()),
			zap.Int("total", len(h.connections)))
	}
}

// handleInbound parses one command string and dispatches it. Malformed
// input is logged and answered with an error message; it never reaches
// the controller.
func (h *Hub) handleInbound(msg InboundHubMessage) {
	cmd, err := commands.Parse(msg.Raw)
	if err != nil {
		h.logger.Warn("rejected command",
			zap.String("connection_id", msg.Conn.ID.String()),
			zap.Error(err))
		h.sendError(msg.Conn, err.Error())
		return
	}

	if err := h.starter.StartGame(cmd.Difficulty, cmd.Minutes); err != nil {
		h.sendError(msg.Conn, err.Error())
	}
}

func (h *Hub) broadcastFrame(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections {
		select {
		case conn.send <- data:
		default:
			// Peer is not draining; drop the frame rather than stall.
		}
	}
}

func (h *Hub) sendError(conn *Connection, msg string) {
	conn.SendJSON(messages.OutboundMessage{
		Event:   "ERROR",
		Payload: messages.ErrorPayload{Message: msg},
	})
}
