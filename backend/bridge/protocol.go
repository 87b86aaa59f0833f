package bridge

import (
	"github.com/goccy/go-json"
)

// Request is one line sent to the backend process
type Request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params,omitempty"`
}

// Response is one line received from the backend process
type Response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Frame is the terminal state returned by advance
type Frame struct {
	Lines       []string `json:"lines"`
	ColorLines  []string `json:"color_lines"`
	CursorX     int      `json:"cursor_x"`
	CursorY     int      `json:"cursor_y"`
	CursorColor int      `json:"cursor_color"`
	CursorBlink bool     `json:"cursor_blink"`
}

// RemoteError is an error reported by the backend process
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return "remote " + e.Method + ": " + e.Message
}
