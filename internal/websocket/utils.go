package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// WritePong answers a client ping.
func WritePong(conn *websocket.Conn) error {
	return WriteTyped(conn, PongResponse{Event: EventPong})
}

// ReadJSON reads and decodes a message into the provided structure.
// The read deadline doubles as the idle cutoff for a live game, so it
// is kept well above the longest per-item time limit.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
	return conn.ReadJSON(v)
}
