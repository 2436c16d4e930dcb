// Package messages defines the JSON payloads notified to companion-app
// peers connected over the websocket link.
package messages

import "github.com/rpichess/clockd/pkg/game"

// OutboundMessage is how we wrap responses before sending
// them to the client
type OutboundMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type ConnectedPayload struct {
	ConnectionId string `json:"connection_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// ClockStatePayload mirrors a game snapshot for the app: remaining
// times in seconds and whose clock is running.
type ClockStatePayload struct {
	WhiteTime  int    `json:"white_time"`
	BlackTime  int    `json:"black_time"`
	ActiveSide string `json:"active_side"`
	Active     bool   `json:"active"`
	Elo        int    `json:"elo"`
}

// ClockState converts a snapshot into its wire payload.
func ClockState(snap game.Snapshot) ClockStatePayload {
	return ClockStatePayload{
		WhiteTime:  snap.WhiteRemaining,
		BlackTime:  snap.BlackRemaining,
		ActiveSide: snap.ActiveSide.String(),
		Active:     snap.Active,
		Elo:        snap.Difficulty,
	}
}
