package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes a Socket.IO server wired to the registry.
// Clients identify themselves after connecting; presence starts at
// identify and ends at disconnect.
func NewSocketServer(registry *Registry) *socketio.Server {
	server := socketio.NewServer(nil)
	registry.Attach(server)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "identify", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("Invalid userId in identify request")
			return
		}
		if err := registry.Bind(userID, c.ID()); err != nil {
			log.Printf("Refusing connection %s for %s: %v", c.ID(), userID, err)
			c.Emit("error", err.Error())
			c.Close()
			return
		}
		c.SetContext(userID)
		c.Join(userRoom(userID))
		log.Printf("User %s identified on connection %s", userID, c.ID())
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		if userID, ok := c.Context().(string); ok && userID != "" {
			registry.Release(userID, c.ID())
		}
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return server
}
