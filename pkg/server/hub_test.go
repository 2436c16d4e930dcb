package server

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpichess/clockd/pkg/chess"
	"github.com/rpichess/clockd/pkg/events"
	"github.com/rpichess/clockd/pkg/game"
)

type fakeStarter struct {
	difficulty, minutes int
	calls               int
	err                 error
}

func (f *fakeStarter) StartGame(difficulty, minutes int) error {
	f.calls++
	f.difficulty = difficulty
	f.minutes = minutes
	return f.err
}

func newBareConnection() *Connection {
	return &Connection{
		ID:     uuid.New(),
		send:   make(chan []byte, 4),
		logger: zap.NewNop(),
	}
}

func drainEvent(t *testing.T, conn *Connection) string {
	t.Helper()

	select {
	case data := <-conn.send:
		var msg struct {
			Event string `json:"event"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg.Event
	default:
		return ""
	}
}

func TestHandleInboundDispatchesStartCommand(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHub(starter, events.NewPublisher(), zap.NewNop())
	conn := newBareConnection()

	h.handleInbound(InboundHubMessage{Conn: conn, Raw: "START_GAME:ELO:1200:TIME:5"})

	assert.Equal(t, 1, starter.calls)
	assert.Equal(t, 1200, starter.difficulty)
	assert.Equal(t, 5, starter.minutes)
	assert.Empty(t, drainEvent(t, conn))
}

func TestHandleInboundRejectsMalformedCommand(t *testing.T) {
	starter := &fakeStarter{}
	h := NewHub(starter, events.NewPublisher(), zap.NewNop())
	conn := newBareConnection()

	h.handleInbound(InboundHubMessage{Conn: conn, Raw: "START_GAME:ELO:abc:TIME:5"})

	assert.Zero(t, starter.calls, "malformed command must not reach the controller")
	assert.Equal(t, "ERROR", drainEvent(t, conn))
}

func TestBroadcastReachesRegisteredConnections(t *testing.T) {
	h := NewHub(&fakeStarter{}, events.NewPublisher(), zap.NewNop())
	conn := newBareConnection()
	h.registerConnection(conn)
	assert.Equal(t, "CONNECTED", drainEvent(t, conn))

	snap := game.Snapshot{
		ActiveSide:     chess.Black,
		WhiteRemaining: 120,
		BlackRemaining: 90,
		Active:         true,
		Difficulty:     1000,
	}
	h.BroadcastState(string(events.EventClockTick), snap)
	h.broadcastFrame(<-h.broadcast)

	select {
	case data := <-conn.send:
		var msg struct {
			Event   string `json:"event"`
			Payload struct {
				WhiteTime  int    `json:"white_time"`
				BlackTime  int    `json:"black_time"`
				ActiveSide string `json:"active_side"`
				Active     bool   `json:"active"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "CLOCK_TICK", msg.Event)
		assert.Equal(t, 120, msg.Payload.WhiteTime)
		assert.Equal(t, 90, msg.Payload.BlackTime)
		assert.Equal(t, "black", msg.Payload.ActiveSide)
		assert.True(t, msg.Payload.Active)
	default:
		t.Fatal("no broadcast delivered to connection")
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	h := NewHub(&fakeStarter{}, events.NewPublisher(), zap.NewNop())
	conn := newBareConnection()
	h.registerConnection(conn)

	h.unregisterConnection(conn)

	// Drain the CONNECTED frame, then the channel must be closed.
	<-conn.send
	_, open := <-conn.send
	assert.False(t, open)
}
