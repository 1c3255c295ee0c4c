package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. sessionId is the
// inspection session the client is watching; uuid.Nil means the client only
// wants personal notifications.
func ServeWs(hub *Hub, c *websocket.Conn, userID, sessionId uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, SessionID: sessionId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
