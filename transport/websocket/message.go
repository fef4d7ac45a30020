package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const (
	actionGameNew  = "game:new"
	actionGameView = "game:view"
	actionGamePlay = "game:play"
	actionGameJump = "game:jump"
	actionGameEnd  = "game:end"

	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	ID   string `json:"id"`
	Row  *int   `json:"row,omitempty"`
	Col  *int   `json:"col,omitempty"`
	Move *int   `json:"move,omitempty"`
}

type ResponsePayload struct {
	ID       string       `json:"id,omitempty"`
	View     *gomoku.View `json:"view,omitempty"`
	Accepted *bool        `json:"accepted,omitempty"`
	Error    string       `json:"error,omitempty"`
}

func errorPayload(msg string) ResponsePayload {
	return ResponsePayload{Error: msg}
}
