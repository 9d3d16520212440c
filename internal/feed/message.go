package feed

import (
	"time"

	"github.com/vovakirdan/neon-snake/internal/snake"
)

// ProtocolVersion is sent with every message.
const ProtocolVersion = 1

// Message types.
const (
	TypeHello        = "hello"
	TypeFoodConsumed = "foodConsumed"
	TypeSpeedChanged = "speedChanged"
	TypeGameOver     = "gameOver"
	TypeState        = "state"
)

// Message is one JSON frame on the feed. Fields irrelevant to Type are omitted;
// pointer fields are present whenever Type carries them, zero included.
type Message struct {
	Ver     int    `json:"ver"`
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Seq     uint64 `json:"seq"`
	SentAt  int64  `json:"sentAt"` // Unix milliseconds

	Score      *int   `json:"score,omitempty"`
	Length     int    `json:"length,omitempty"`
	X          *int   `json:"x,omitempty"`
	Y          *int   `json:"y,omitempty"`
	IntervalMS int64  `json:"intervalMs,omitempty"`
	Cause      string `json:"cause,omitempty"`
	Steps      uint64 `json:"steps,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
}

// messageFor converts an engine event. ok is false for unknown events.
func messageFor(sessionID string, ev snake.Event, now time.Time) (Message, bool) {
	msg := Message{Ver: ProtocolVersion, Session: sessionID, SentAt: now.UnixMilli()}

	switch e := ev.(type) {
	case snake.FoodConsumed:
		x, y, score := e.At.X, e.At.Y, e.Score
		msg.Type = TypeFoodConsumed
		msg.Score = &score
		msg.Length = e.Length
		msg.X, msg.Y = &x, &y
	case snake.SpeedChanged:
		msg.Type = TypeSpeedChanged
		msg.IntervalMS = e.Interval.Milliseconds()
	case snake.GameOver:
		score := e.FinalScore
		msg.Type = TypeGameOver
		msg.Score = &score
		msg.Length = e.Length
		msg.Cause = e.Cause.String()
		msg.Steps = e.Steps
	case snake.StateChanged:
		msg.Type = TypeState
		msg.From = e.From.String()
		msg.To = e.To.String()
	default:
		return Message{}, false
	}
	return msg, true
}
